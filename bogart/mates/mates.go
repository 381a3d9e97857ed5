// Package mates evaluates mate-pair consistency against a per-library
// insert-size distribution, classifying each pair and building positional
// "badness" arrays used by downstream splitting heuristics.
package mates

import (
	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/insert"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// Outcome classifies a single mate pair's measured placement.
type Outcome int

const (
	Happy Outcome = iota
	Compressed
	Stretched
	Normal
	Anti
	Outtie
	GoodExternal
	BadExternalFwd
	BadExternalRev
)

// Counts tallies outcomes, segregated by how many of the pair's two reads
// are contained (0, 1, or 2), matching the original's dove-dove / dove-cont
// / cont-cont buckets.
type Counts struct {
	Happy, Compressed, Stretched   int
	Normal, Anti, Outtie           int
	GoodExternal                   int
	BadExternalFwd, BadExternalRev int
}

// MateLocation is the per-unitig mate evaluation result: positional
// badness/goodness arrays plus aggregate counts.
type MateLocation struct {
	tig *tig.Unitig

	good   []int32
	badFwd []int32
	badRev []int32

	byContained [3]Counts
}

// Good returns the per-position "happy coverage" array, length
// u.Length().
func (ml *MateLocation) Good() []int32 { return ml.good }

// BadFwd returns the per-position bad-toward-3' array.
func (ml *MateLocation) BadFwd() []int32 { return ml.badFwd }

// BadRev returns the per-position bad-toward-5' array.
func (ml *MateLocation) BadRev() []int32 { return ml.badRev }

// Counts returns the aggregate outcome tally for pairs with exactly
// nContained (0, 1, or 2) reads contained.
func (ml *MateLocation) Counts(nContained int) Counts { return ml.byContained[nContained] }

// Evaluate builds a MateLocation for u, classifying every mate pair that
// touches it. Cross-unitig pairs are evaluated once per side: each
// unitig's MateLocation reflects only its own half of the pair, matching
// the per-unitig fleet model of the reporting step.
func Evaluate(u *tig.Unitig, tv *tig.TigVector, fi external.ReadInfo, is *insert.InsertSizes, cfg *bogartcfg.Config) *MateLocation {
	ml := &MateLocation{
		tig:    u,
		good:   make([]int32, u.Length()+1),
		badFwd: make([]int32, u.Length()+1),
		badRev: make([]int32, u.Length()+1),
	}

	seen := make(map[readinfo.ReadID]bool)

	for _, n := range u.Ufpath {
		mate := fi.MateID(n.Ident)
		if mate == 0 || seen[n.Ident] {
			continue
		}

		if tv.InUnitig(mate) == u.ID() {
			if n.Ident > mate {
				continue // evaluate same-unitig pairs once, from the lower id
			}
			mi := u.PathPosition(mate)
			if mi < 0 {
				continue
			}
			seen[mate] = true
			ml.evaluateIntra(n, u.Ufpath[mi], fi, is, cfg)
		} else {
			ml.evaluateInter(n, tv, fi, is, cfg)
		}
	}

	return ml
}

func nContained(a, b tig.UFNode) int {
	n := 0
	if a.Contained != 0 {
		n++
	}
	if b.Contained != 0 {
		n++
	}
	return n
}

func (ml *MateLocation) evaluateIntra(a, b tig.UFNode, fi external.ReadInfo, is *insert.InsertSizes, cfg *bogartcfg.Config) {
	bucket := &ml.byContained[nContained(a, b)]

	lib := fi.LibraryID(a.Ident)
	var badMaxIntra int32
	if is.Valid(lib) {
		badMaxIntra = int32(is.Mean(lib) + cfg.BadMateIntraStddev*is.Stddev(lib))
	}

	if a.Position.Reverse() == b.Position.Reverse() {
		if !a.Position.Reverse() {
			bucket.Normal++
			ml.markBad(a, badMaxIntra)
			ml.markBad(b, badMaxIntra)
		} else {
			bucket.Anti++
			ml.markBad(a, badMaxIntra)
			ml.markBad(b, badMaxIntra)
		}
		return
	}

	fwd, rev := a, b
	if fwd.Position.Reverse() {
		fwd, rev = rev, fwd
	}

	if fwd.Position.Min() > rev.Position.Min() {
		bucket.Outtie++
		ml.markBad(fwd, badMaxIntra)
		ml.markBad(rev, badMaxIntra)
		return
	}

	distance := rev.Position.Max() - fwd.Position.Min()

	if !is.Valid(lib) {
		ml.markGood(fwd.Position.Min(), rev.Position.Max())
		bucket.Happy++
		return
	}

	mean, stddev := is.Mean(lib), is.Stddev(lib)
	badMin := mean - cfg.BadMateIntraStddev*stddev
	badMax := mean + cfg.BadMateIntraStddev*stddev

	switch {
	case float64(distance) < badMin:
		bucket.Compressed++
		ml.markBad(fwd, badMaxIntra)
		ml.markBad(rev, badMaxIntra)
	case float64(distance) > badMax:
		bucket.Stretched++
		ml.markBad(fwd, badMaxIntra)
		ml.markBad(rev, badMaxIntra)
	default:
		bucket.Happy++
		ml.markGood(fwd.Position.Min(), rev.Position.Max())
	}
}

func (ml *MateLocation) evaluateInter(n tig.UFNode, tv *tig.TigVector, fi external.ReadInfo, is *insert.InsertSizes, cfg *bogartcfg.Config) {
	bucket := &ml.byContained[boolToContained(n)]

	lib := fi.LibraryID(n.Ident)

	var distanceToEnd int32
	forward := !n.Position.Reverse()
	if forward {
		distanceToEnd = ml.tig.Length() - n.Position.Bgn
	} else {
		distanceToEnd = n.Position.Bgn
	}

	if !is.Valid(lib) {
		bucket.GoodExternal++
		return
	}

	badMaxInter := is.Mean(lib) + cfg.BadMateInterStddev*is.Stddev(lib)
	badMaxIntra := int32(is.Mean(lib) + cfg.BadMateIntraStddev*is.Stddev(lib))

	if badMaxInter < float64(distanceToEnd) {
		if forward {
			bucket.BadExternalFwd++
		} else {
			bucket.BadExternalRev++
		}
		ml.markBad(n, badMaxIntra)
		return
	}

	bucket.GoodExternal++
	if forward {
		ml.markGood(n.Position.Min(), ml.tig.Length())
	} else {
		ml.markGood(0, n.Position.Max())
	}
}

func boolToContained(n tig.UFNode) int {
	if n.Contained != 0 {
		return 1
	}
	return 0
}

func (ml *MateLocation) markGood(bgn, end int32) {
	incrRange(ml.good, bgn, end)
}

// markBad increments badFwd or badRev over the range running from node's 3'
// end toward where its missing mate should lie, for up to badMax bases
// (spec.md §4.5; AS_BAT_MateLocation.C's "markBad:" label). Forward nodes
// mark badFwd from their 3' end (Position.Max()) out to Position.Min()+
// badMax; reverse nodes mark badRev from Position.Max()-badMax in to their
// 3' end (Position.Min()).
func (ml *MateLocation) markBad(node tig.UFNode, badMax int32) {
	if !node.Position.Reverse() {
		incrRange(ml.badFwd, node.Position.Max(), node.Position.Min()+badMax)
	} else {
		incrRange(ml.badRev, node.Position.Max()-badMax, node.Position.Min())
	}
}

func incrRange(arr []int32, bgn, end int32) {
	bgn, end = clampRange(bgn, end, int32(len(arr)))
	for p := bgn; p < end; p++ {
		arr[p]++
	}
}

func clampRange(bgn, end, limit int32) (int32, int32) {
	if bgn < 0 {
		bgn = 0
	}
	if end > limit {
		end = limit
	}
	if bgn > end {
		bgn = end
	}
	return bgn, end
}
