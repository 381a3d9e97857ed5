// Package overlap defines the read-to-read overlap representation bogart
// consumes from the (external) overlap store, and an in-memory indexed
// cache over it. The original assembler's polymorphic overlap-record
// hierarchy collapses here into one tagged struct plus helper methods, per
// the port's "inheritance to tagged variants" design note.
package overlap

import "github.com/grailbio/bogart/bogart/readinfo"

// Overlap is a single claim that read A and read B share a sufficiently
// long, sufficiently similar aligned region. Hangs follow the assembler
// convention: a positive AHang means A extends to the left of B.
type Overlap struct {
	A, B     readinfo.ReadID
	AHang    int32
	BHang    int32
	Flipped  bool
	ErateBp1 float64 // error rate, expressed as a fraction in [0,1]
}

// Length returns the overlap's alignment length on A, per spec.md §6:
// trueLength(a) - max(0,a_hang) + min(0,b_hang).
func (o Overlap) Length(trueLengthA uint32) int32 {
	ah := o.AHang
	if ah < 0 {
		ah = 0
	}
	bh := o.BHang
	if bh > 0 {
		bh = 0
	}
	return int32(trueLengthA) - ah + bh
}

// IsContainment reports whether this overlap fully covers B within A,
// i.e. AHang >= 0 and BHang <= 0.
func (o Overlap) IsContainment() bool {
	return o.AHang >= 0 && o.BHang <= 0
}

// Cache is a read-indexed, read-only-after-construction in-memory overlap
// store. It is the Go analog of the original OverlapCache (OC).
type Cache struct {
	byRead map[readinfo.ReadID][]Overlap
}

// NewCache builds a Cache that indexes each overlap under both of its
// participating reads (with hangs renormalized so the indexed read is
// always the A side), mirroring how the original OC answers "all overlaps
// touching read r" regardless of which side of the overlap record r was
// stored on.
func NewCache(overlaps []Overlap) *Cache {
	c := &Cache{byRead: make(map[readinfo.ReadID][]Overlap, len(overlaps)*2)}
	for _, o := range overlaps {
		c.byRead[o.A] = append(c.byRead[o.A], o)
		c.byRead[o.B] = append(c.byRead[o.B], flip(o))
	}
	return c
}

// flip returns the overlap record as seen from B's point of view: B
// becomes the A side, with hangs and flipped-flag renormalized.
func flip(o Overlap) Overlap {
	if !o.Flipped {
		return Overlap{A: o.B, B: o.A, AHang: -o.AHang, BHang: -o.BHang, Flipped: false, ErateBp1: o.ErateBp1}
	}
	// Flipped overlaps are symmetric in hang sign under the assembler's
	// convention: swapping ends exchanges AHang and BHang without negating
	// them.
	return Overlap{A: o.B, B: o.A, AHang: o.BHang, BHang: o.AHang, Flipped: true, ErateBp1: o.ErateBp1}
}

// Overlaps returns every overlap with r as the A side, in the order
// inserted.
func (c *Cache) Overlaps(r readinfo.ReadID) []Overlap {
	return c.byRead[r]
}
