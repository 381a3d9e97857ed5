package tig

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/external"
)

// PlaceFragContainment computes frag's position, parent, and hangs given a
// best-containment edge whose container is already placed in this unitig
// (spec.md §4.2.2). bc.Container must be in this unitig and
// bc.IsContained must be true with AHang >= 0, BHang <= 0 for a true
// containment (the inverted, non-addable relationship used while placing
// by raw overlaps is also accepted for the position math, but the caller
// must not then append frag to this unitig).
//
// Returns false (and logs a warning) if the container is not in this
// unitig.
func (u *Unitig) PlaceFragContainment(frag *UFNode, bc *bestoverlap.Containment, fi external.ReadInfo) bool {
	frag.Contained = 0
	frag.Parent = 0
	frag.AHang = 0
	frag.BHang = 0
	frag.Position = Position{}
	frag.ContainmentDepth = 0

	pi := u.PathPosition(bc.Container)
	if pi < 0 {
		log.Error(fmt.Sprintf("Unitig::PlaceFragContainment()-- WARNING: failed to place frag %d into unitig %d; parent not here.", frag.Ident, u.id))
		return false
	}
	parent := &u.Ufpath[pi]

	if bc.IsContained {
		if bc.AHang < 0 || bc.BHang > 0 {
			log.Error(fmt.Sprintf("Unitig::PlaceFragContainment()-- WARNING: bad containment hangs for frag %d (a_hang=%d b_hang=%d)", frag.Ident, bc.AHang, bc.BHang))
		}
	}

	parentForward := parent.Position.Bgn < parent.Position.End
	parentTrueLen := float64(fi.Length(parent.Ident))

	if parentForward {
		frag.Contained = bc.Container
		frag.Parent = bc.Container
		frag.AHang = bc.AHang
		frag.BHang = bc.BHang

		scale := float64(parent.Position.End-parent.Position.Bgn) / parentTrueLen

		if bc.SameOrientation {
			frag.Position.Bgn = parent.Position.Bgn + int32(float64(frag.AHang)*scale)
			frag.Position.End = parent.Position.End + int32(float64(frag.BHang)*scale)
		} else {
			frag.Position.Bgn = parent.Position.End + int32(float64(frag.BHang)*scale)
			frag.Position.End = parent.Position.Bgn + int32(float64(frag.AHang)*scale)
		}
	} else {
		frag.Contained = bc.Container
		frag.Parent = bc.Container
		frag.AHang = -bc.BHang
		frag.BHang = -bc.AHang

		scale := float64(parent.Position.Bgn-parent.Position.End) / parentTrueLen

		if bc.SameOrientation {
			frag.Position.Bgn = parent.Position.Bgn + int32(float64(frag.BHang)*scale)
			frag.Position.End = parent.Position.End + int32(float64(frag.AHang)*scale)
		} else {
			frag.Position.Bgn = parent.Position.End + int32(float64(frag.AHang)*scale)
			frag.Position.End = parent.Position.Bgn + int32(float64(frag.BHang)*scale)
		}
	}

	if !bc.IsContained {
		// Inverted containment relationship (used transiently when placing
		// by raw overlaps); skip the length-based adjustment below.
		return true
	}

	// The hang-only placement tends to shrink containees well below their
	// true length. Recenter around the hang-placed midpoint using the
	// average of the placed and true lengths, then clamp both ends to the
	// container's span.
	trueLen := int32(fi.Length(frag.Ident))
	fragPos := (frag.Position.Bgn + frag.Position.End) / 2

	if frag.Position.Bgn < frag.Position.End {
		placedLen := frag.Position.End - frag.Position.Bgn
		aveLen := (placedLen + trueLen) / 2
		frag.Position.Bgn = fragPos - aveLen/2
		frag.Position.End = fragPos + aveLen/2
	} else {
		placedLen := frag.Position.Bgn - frag.Position.End
		aveLen := (placedLen + trueLen) / 2
		frag.Position.Bgn = fragPos + aveLen/2
		frag.Position.End = fragPos - aveLen/2
	}

	minParent, maxParent := parent.Position.Min(), parent.Position.Max()

	if frag.Position.Bgn < minParent {
		frag.Position.Bgn = minParent
	}
	if frag.Position.End < minParent {
		frag.Position.End = minParent
	}
	if frag.Position.Bgn > maxParent {
		frag.Position.Bgn = maxParent
	}
	if frag.Position.End > maxParent {
		frag.Position.End = maxParent
	}

	frag.ContainmentDepth = parent.ContainmentDepth + 1

	return true
}
