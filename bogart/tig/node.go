// Package tig implements bogart's unitig data model: the placed-read path
// (UFNode/Unitig) and the block-allocated collection of unitigs with its
// read-to-tig reverse map (TigVector). This is the heart of the bogart
// core described in spec.md §3-4.2.
package tig

import "github.com/grailbio/bogart/bogart/readinfo"

// TigID identifies a Unitig within a TigVector. Zero means "no unitig".
type TigID uint32

// Position is a signed half-open interval along a unitig. Bgn < End means
// the read is forward-oriented; Bgn > End means reverse.
type Position struct {
	Bgn, End int32
}

// Min returns the lower coordinate, regardless of orientation.
func (p Position) Min() int32 {
	if p.Bgn < p.End {
		return p.Bgn
	}
	return p.End
}

// Max returns the upper coordinate, regardless of orientation.
func (p Position) Max() int32 {
	if p.Bgn > p.End {
		return p.Bgn
	}
	return p.End
}

// Len returns the placed span, |End-Bgn|. This approximates, but does not
// guarantee to equal, the read's true length (spec.md §3).
func (p Position) Len() int32 {
	if p.Bgn < p.End {
		return p.End - p.Bgn
	}
	return p.Bgn - p.End
}

// Reverse reports whether the position is reverse-oriented (Bgn > End).
func (p Position) Reverse() bool {
	return p.Bgn > p.End
}

// UFNode is a single placed read within a Unitig's path.
type UFNode struct {
	Ident readinfo.ReadID // >0

	Contained readinfo.ReadID // 0 if not contained
	Parent    readinfo.ReadID // 0 if none

	AHang, BHang int32 // signed hangs relative to Parent

	Position Position

	ContainmentDepth uint32 // 0 for non-contained reads
}
