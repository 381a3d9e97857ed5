package tig

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/readinfo"
)

// Unitig is a maximal linear layout of reads: an ordered path of placed
// reads (Ufpath) with per-read coordinates, owned by exactly one
// TigVector.
type Unitig struct {
	tv *TigVector // owning vector, for reverse-map updates

	id     TigID
	length int32
	Ufpath []UFNode

	IsUnassembled  bool
	IsRepeat       bool
	IsCircular     bool
	IsBubble       bool
	CircularLength int32

	errorProfile *errorProfile // optional, built by ComputeErrorProfiles

	pathIndex map[readinfo.ReadID]int // local read -> Ufpath index
}

// ID returns the unitig's id, assigned once by its owning TigVector and
// never reused.
func (u *Unitig) ID() TigID { return u.id }

// Length returns the unitig's current length.
func (u *Unitig) Length() int32 { return u.length }

// NumReads returns the number of reads placed in this unitig.
func (u *Unitig) NumReads() int { return len(u.Ufpath) }

// PathPosition returns the index of r within Ufpath, or -1 if r is not in
// this unitig.
func (u *Unitig) PathPosition(r readinfo.ReadID) int {
	if idx, ok := u.pathIndex[r]; ok {
		return idx
	}
	return -1
}

func (u *Unitig) rebuildPathIndex() {
	if u.pathIndex == nil {
		u.pathIndex = make(map[readinfo.ReadID]int, len(u.Ufpath))
	} else {
		for k := range u.pathIndex {
			delete(u.pathIndex, k)
		}
	}
	for i, n := range u.Ufpath {
		u.pathIndex[n.Ident] = i
	}
	if u.tv != nil {
		u.tv.reindexUnitig(u)
	}
}

// AddRead appends node to Ufpath. If the node's minimum coordinate plus
// offset would be negative, the whole unitig is shifted right first so the
// new minimum coordinate is zero (spec.md §4.2.1). verbose requests a log
// line on append, mirroring Unitig::addFrag(..., verbose).
func (u *Unitig) AddRead(node UFNode, offset int32, verbose bool) {
	bgn := node.Position.Bgn + offset
	end := node.Position.End + offset

	if min32(bgn, end) < 0 {
		shift := -min32(bgn, end)
		u.shiftRight(shift)
		bgn += shift
		end += shift
	}

	node.Position.Bgn = bgn
	node.Position.End = end

	u.Ufpath = append(u.Ufpath, node)
	if u.pathIndex == nil {
		u.pathIndex = make(map[readinfo.ReadID]int)
	}
	u.pathIndex[node.Ident] = len(u.Ufpath) - 1

	if m := max32(node.Position.Bgn, node.Position.End); m > u.length {
		u.length = m
	}

	if u.tv != nil {
		u.tv.registerRead(node.Ident, u.id, len(u.Ufpath)-1)
	}
	if verbose {
		log.Info(fmt.Sprintf("Unitig::AddRead()-- tig %d add read %d at %d,%d", u.id, node.Ident, node.Position.Bgn, node.Position.End))
	}
}

// shiftRight adds delta to every node's coordinates, keeping orientation.
func (u *Unitig) shiftRight(delta int32) {
	for i := range u.Ufpath {
		u.Ufpath[i].Position.Bgn += delta
		u.Ufpath[i].Position.End += delta
	}
	u.length += delta
}

// ShiftBy adds delta (positive or negative) to every node's coordinates
// and to the unitig's length. Used by passes that renormalize a unitig (or
// a soon-to-be-split group of it) so its minimum coordinate is 0.
func (u *Unitig) ShiftBy(delta int32) {
	u.shiftRight(delta)
}

// Truncate discards every node at index n or beyond, recomputing length
// from the remaining nodes. Used by splitDiscontinuousUnitigs after the
// nodes beyond n have been moved into new unitigs.
func (u *Unitig) Truncate(n int) {
	u.Ufpath = u.Ufpath[:n]
	u.length = 0
	for _, node := range u.Ufpath {
		if m := max32(node.Position.Bgn, node.Position.End); m > u.length {
			u.length = m
		}
	}
	u.rebuildPathIndex()
}

// ReverseComplement flips every node's coordinates about the unitig's
// length, then either re-sorts (required when containments are present,
// spec.md §4.2.5) or reverses the path in place.
func (u *Unitig) ReverseComplement(doSort bool) {
	for i := range u.Ufpath {
		u.Ufpath[i].Position.Bgn = u.length - u.Ufpath[i].Position.Bgn
		u.Ufpath[i].Position.End = u.length - u.Ufpath[i].Position.End
	}

	if doSort {
		u.Sort()
		return
	}

	for i, j := 0, len(u.Ufpath)-1; i < j; i, j = i+1, j-1 {
		u.Ufpath[i], u.Ufpath[j] = u.Ufpath[j], u.Ufpath[i]
	}
	u.rebuildPathIndex()
}

// Sort stably orders Ufpath by (min position asc, max position desc,
// containment depth asc), so containers always sort before the reads they
// contain (spec.md invariant 5).
func (u *Unitig) Sort() {
	sort.SliceStable(u.Ufpath, func(i, j int) bool {
		a, b := u.Ufpath[i], u.Ufpath[j]
		aMin, bMin := a.Position.Min(), b.Position.Min()
		if aMin != bMin {
			return aMin < bMin
		}
		aMax, bMax := a.Position.Max(), b.Position.Max()
		if aMax != bMax {
			return aMax > bMax
		}
		return a.ContainmentDepth < b.ContainmentDepth
	})
	u.rebuildPathIndex()
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
