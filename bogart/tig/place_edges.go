package tig

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/external"
)

// PlaceFragEdges computes frag5.Position/frag3.Position from one or both
// best dovetail edges into this unitig (spec.md §4.2.3). Either edge may
// be nil, have FragID 0, or point outside this unitig; such edges are
// discarded and the corresponding bidx is set to -1.
//
// Returns true if at least one edge produced a placement.
func (u *Unitig) PlaceFragEdges(
	frag5 *UFNode, bidx5 *int, edge5 *bestoverlap.EdgeOverlap,
	frag3 *UFNode, bidx3 *int, edge3 *bestoverlap.EdgeOverlap,
	fi external.ReadInfo,
) bool {
	*bidx5 = -1
	*bidx3 = -1

	*frag5 = UFNode{Ident: frag5.Ident}
	*frag3 = UFNode{Ident: frag3.Ident}

	if edge5 != nil && edge5.FragID == 0 {
		edge5 = nil
	}
	if edge3 != nil && edge3.FragID == 0 {
		edge3 = nil
	}

	if edge5 != nil {
		if pi := u.PathPosition(edge5.FragID); pi >= 0 {
			*bidx5 = pi
		} else {
			edge5 = nil
		}
	}
	if edge3 != nil {
		if pi := u.PathPosition(edge3.FragID); pi >= 0 {
			*bidx3 = pi
		} else {
			edge3 = nil
		}
	}

	if edge5 != nil && *bidx5 != -1 {
		u.placeOneEdge(frag5, u.Ufpath[*bidx5], edge5, false, fi)
	}
	if edge3 != nil && *bidx3 != -1 {
		u.placeOneEdge(frag3, u.Ufpath[*bidx3], edge3, true, fi)
	}

	return *bidx5 != -1 || *bidx3 != -1
}

// placeOneEdge implements one of the two symmetric blocks of the original
// placeFrag(ufNode&,int32&,BestEdgeOverlap*,...): place `frag` using a best
// edge to `parent`, where wasEnd3p says whether this is the 3'-end overload
// (true) or the 5'-end overload (false).
func (u *Unitig) placeOneEdge(frag *UFNode, parent UFNode, edge *bestoverlap.EdgeOverlap, wasEnd3p bool, fi external.ReadInfo) {
	// Overlaps are stored with the new fragment as the A side; negate to
	// make the hangs relative to the parent, flipping when the edge hits
	// the parent's near end (5' for the 5'-overload, 3' for the 3'-overload).
	var ahang, bhang int32
	nearEnd := edge.Frag3p == wasEnd3p
	if !nearEnd {
		ahang = -edge.AHang
		bhang = -edge.BHang
	} else {
		ahang = edge.BHang
		bhang = edge.AHang
	}

	parentForward := parent.Position.Bgn < parent.Position.End

	var pbgn, pend, bgnhang, endhang int32
	if parentForward {
		pbgn, pend = parent.Position.Bgn, parent.Position.End
		bgnhang, endhang = ahang, bhang
	} else {
		pbgn, pend = parent.Position.End, parent.Position.Bgn
		bgnhang, endhang = -bhang, -ahang
	}

	// Scale the hang that falls inside the parent's placed span by how
	// much the parent itself has been stretched or shrunk from its true
	// length; the hang falling outside the parent is left unscaled.
	parentPlacedLen := pend - pbgn
	parentTrueLen := float64(fi.Length(parent.Ident))
	intraScale := float64(parentPlacedLen) / parentTrueLen
	const interScale = 1.0

	var fbgn, fend int32
	if bgnhang > 0 {
		fbgn = pbgn + int32(float64(bgnhang)*intraScale)
		fend = pend + int32(float64(endhang)*interScale)
	} else {
		fbgn = pbgn + int32(float64(bgnhang)*interScale)
		fend = pend + int32(float64(endhang)*intraScale)
	}

	// Knowing only the hangs shrinks fragments well below their true
	// length; recover the true length from whichever end is unconstrained
	// by the parent overlap, then clamp to preserve the dovetail
	// relationship against the parent.
	if bgnhang > 0 {
		fend = fbgn + int32(fi.Length(frag.Ident))
	} else {
		fbgn = fend - int32(fi.Length(frag.Ident))
	}

	if fbgn < pbgn {
		if fend >= pend {
			log.Error(fmt.Sprintf("Unitig::placeOneEdge()-- clamped fend from %d to %d for frag %d", fend, pend-1, frag.Ident))
			fend = pend - 1
		}
	} else {
		if fend <= pend {
			log.Error(fmt.Sprintf("Unitig::placeOneEdge()-- clamped fend from %d to %d for frag %d", fend, pend+1, frag.Ident))
			fend = pend + 1
		}
	}

	// The new frag is reverse iff (parent forward and edge touches the
	// parent's end matching wasEnd3p) or (parent reverse and it touches
	// the other end), matching the 5'/3' overload's symmetric flip rule.
	flip := (parentForward && edge.Frag3p == wasEnd3p) || (!parentForward && edge.Frag3p != wasEnd3p)

	frag.Contained = 0
	frag.Parent = edge.FragID
	frag.AHang = ahang
	frag.BHang = bhang
	if flip {
		frag.Position.Bgn, frag.Position.End = fend, fbgn
	} else {
		frag.Position.Bgn, frag.Position.End = fbgn, fend
	}
}
