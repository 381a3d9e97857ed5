package tig

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bogart/bogart/readinfo"
)

// blockSize is the allocation granularity of TigVector's two-level unitig
// array, matching spec.md §4.1's default of 1,048,576.
const blockSize = 1 << 20

// ErrOutOfCapacity is returned by NewUnitig when the block table cannot
// grow any further.
var ErrOutOfCapacity = errors.New("tig: out of unitig capacity")

// TigVector owns every Unitig and the read -> (tig, path index) reverse
// map. Allocation (NewUnitig, DeleteUnitig) and reverse-map updates are
// serialized with mu; lookups of already-observed slots
// require no lock, matching the single-writer/many-reader model of
// spec.md §5.
type TigVector struct {
	mu sync.Mutex

	blocks [][]*Unitig // slot 0 of block 0 is always nil: id 0 means "no unitig"
	nextID TigID

	inUnitig  []TigID // indexed by readinfo.ReadID
	ufpathIdx []int32 // indexed by readinfo.ReadID
}

// New returns an empty TigVector sized to hold numReads reads.
func New(numReads readinfo.ReadID) *TigVector {
	tv := &TigVector{
		inUnitig:  make([]TigID, numReads+1),
		ufpathIdx: make([]int32, numReads+1),
	}
	tv.blocks = append(tv.blocks, make([]*Unitig, blockSize))
	tv.nextID = 1 // slot 0 reserved
	return tv
}

func (tv *TigVector) ensureReadCapacity(r readinfo.ReadID) {
	if int(r) < len(tv.inUnitig) {
		return
	}
	grown := make([]TigID, r+1)
	copy(grown, tv.inUnitig)
	tv.inUnitig = grown

	grownIdx := make([]int32, r+1)
	copy(grownIdx, tv.ufpathIdx)
	tv.ufpathIdx = grownIdx
}

// NewUnitig allocates a new, empty Unitig and assigns it a unique,
// never-reused id.
func (tv *TigVector) NewUnitig(verbose bool) (*Unitig, error) {
	tv.mu.Lock()
	defer tv.mu.Unlock()

	id := tv.nextID
	blockIdx := int(id) / blockSize
	slotIdx := int(id) % blockSize

	for blockIdx >= len(tv.blocks) {
		if len(tv.blocks) >= 1<<20 {
			return nil, ErrOutOfCapacity
		}
		tv.blocks = append(tv.blocks, make([]*Unitig, blockSize))
	}

	u := &Unitig{tv: tv, id: id}
	tv.blocks[blockIdx][slotIdx] = u
	tv.nextID++

	if verbose {
		log.Info(fmt.Sprintf("Creating Unitig %d", id))
	}
	return u, nil
}

// Get returns the unitig with the given id, or nil if it was never
// allocated or has been deleted.
func (tv *TigVector) Get(id TigID) *Unitig {
	blockIdx := int(id) / blockSize
	slotIdx := int(id) % blockSize
	if blockIdx >= len(tv.blocks) {
		return nil
	}
	return tv.blocks[blockIdx][slotIdx]
}

// DeleteUnitig frees the unitig's slot. Subsequent Get calls return nil.
// The id is never reassigned.
func (tv *TigVector) DeleteUnitig(id TigID) {
	tv.mu.Lock()
	defer tv.mu.Unlock()

	blockIdx := int(id) / blockSize
	slotIdx := int(id) % blockSize
	if blockIdx < len(tv.blocks) {
		tv.blocks[blockIdx][slotIdx] = nil
	}
}

// MaxID returns the highest id ever assigned (not all ids <= MaxID are
// necessarily still live).
func (tv *TigVector) MaxID() TigID {
	return tv.nextID - 1
}

// Each calls fn for every live (non-nil) unitig, in id order.
func (tv *TigVector) Each(fn func(*Unitig)) {
	for id := TigID(1); id <= tv.MaxID(); id++ {
		if u := tv.Get(id); u != nil {
			fn(u)
		}
	}
}

// registerRead updates the reverse map for a single read. Called by
// Unitig.AddRead and by reindexUnitig after a sort/split/reverse.
func (tv *TigVector) registerRead(r readinfo.ReadID, t TigID, idx int) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	tv.ensureReadCapacity(r)
	tv.inUnitig[r] = t
	tv.ufpathIdx[r] = int32(idx)
}

// Unregister clears the reverse map entry for r, used when a read is
// deleted outright (e.g. a shattered singleton with no living container).
func (tv *TigVector) Unregister(r readinfo.ReadID) {
	tv.unregisterRead(r)
}

// unregisterRead clears the reverse map entry for r, used when a read is
// deleted outright (e.g. a shattered singleton with no living container).
func (tv *TigVector) unregisterRead(r readinfo.ReadID) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	if int(r) < len(tv.inUnitig) {
		tv.inUnitig[r] = 0
		tv.ufpathIdx[r] = 0
	}
}

// reindexUnitig re-registers every read in u against the reverse map,
// used after Sort/ReverseComplement reorder Ufpath.
func (tv *TigVector) reindexUnitig(u *Unitig) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	for i, n := range u.Ufpath {
		tv.ensureReadCapacity(n.Ident)
		tv.inUnitig[n.Ident] = u.id
		tv.ufpathIdx[n.Ident] = int32(i)
	}
}

// InUnitig returns the id of the unitig containing r, or 0 if r is
// unplaced.
func (tv *TigVector) InUnitig(r readinfo.ReadID) TigID {
	if int(r) >= len(tv.inUnitig) {
		return 0
	}
	return tv.inUnitig[r]
}

// UfpathIdx returns r's index within its unitig's Ufpath. The result is
// meaningless if InUnitig(r) == 0.
func (tv *TigVector) UfpathIdx(r readinfo.ReadID) int32 {
	if int(r) >= len(tv.ufpathIdx) {
		return 0
	}
	return tv.ufpathIdx[r]
}

// ComputeArrivalRate computes, for every unitig with >= 2 reads, the
// arrival rate (reads per base) used by downstream coverage-stat
// reporting. Unitigs are processed in parallel, one goroutine per unitig,
// mirroring the fleet operations of spec.md §4.1 and the work-stealing
// model of §5.
func (tv *TigVector) ComputeArrivalRate(ids []TigID) []float64 {
	rates := make([]float64, len(ids))
	_ = traverse.Each(len(ids), func(i int) error { // nolint: errcheck
		u := tv.Get(ids[i])
		if u == nil || len(u.Ufpath) < 2 || u.Length() == 0 {
			return nil
		}
		rates[i] = float64(len(u.Ufpath)) / float64(u.Length())
		return nil
	})
	return rates
}

// ComputeErrorProfiles builds an error profile for every unitig with >= 2
// reads using build, run in parallel per unitig.
func (tv *TigVector) ComputeErrorProfiles(build func(*Unitig) []ErrorInterval) error {
	ids := tv.liveIDs()
	return traverse.Each(len(ids), func(i int) error {
		u := tv.Get(ids[i])
		if u == nil || len(u.Ufpath) < 2 {
			return nil
		}
		u.SetErrorProfile(build(u))
		return nil
	})
}

// ReportErrorProfiles writes a TSV of (tigID, bgn, end, mean, stddev) rows
// for every unitig with a computed error profile.
func (tv *TigVector) ReportErrorProfiles(w io.Writer) error {
	tsvw := tsv.NewWriter(w)
	var werr error
	tv.Each(func(u *Unitig) {
		if werr != nil || u.errorProfile == nil {
			return
		}
		for _, iv := range u.errorProfile.intervals {
			tsvw.WriteUint32(uint32(u.id))
			tsvw.WriteInt64(int64(iv.Bgn))
			tsvw.WriteInt64(int64(iv.End))
			tsvw.WriteString(strconv.FormatFloat(iv.Mean, 'g', -1, 64))
			tsvw.WriteString(strconv.FormatFloat(iv.Stddev, 'g', -1, 64))
			if werr = tsvw.EndLine(); werr != nil {
				return
			}
		}
	})
	if werr != nil {
		return errors.E(werr, "tig: writing error profile report")
	}
	return tsvw.Flush()
}

func (tv *TigVector) liveIDs() []TigID {
	var ids []TigID
	tv.Each(func(u *Unitig) { ids = append(ids, u.id) })
	return ids
}
