package tig

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
)

// edgeThickness is the overlap length implied by a best edge alone,
// without knowing the peer's true length: |read| + min(0,bhang) -
// max(0,ahang), per spec.md §6/§4.2.4.
func edgeThickness(readLen uint32, e *bestoverlap.EdgeOverlap) int32 {
	bh := e.BHang
	if bh > 0 {
		bh = 0
	}
	ah := e.AHang
	if ah < 0 {
		ah = 0
	}
	return int32(readLen) + bh - ah
}

// AddAndPlaceFrag places readID into this unitig using whichever of edge5
// (off the new read's 5' end) or edge3 (off its 3' end) is thicker, then
// appends it (spec.md §4.2.4). Ties are broken toward edge3, preserving
// the original assembler's strict-less-than comparison.
//
// Returns false if neither edge reaches into this unitig.
func (u *Unitig) AddAndPlaceFrag(readID readinfo.ReadID, edge5, edge3 *bestoverlap.EdgeOverlap, report bool, fi external.ReadInfo) bool {
	readLen := fi.Length(readID)

	if edge5 != nil && edge5.FragID == 0 {
		edge5 = nil
	}
	if edge3 != nil && edge3.FragID == 0 {
		edge3 = nil
	}
	if edge5 != nil && u.PathPosition(edge5.FragID) < 0 {
		edge5 = nil
	}
	if edge3 != nil && u.PathPosition(edge3.FragID) < 0 {
		edge3 = nil
	}

	var blen5, blen3 int32
	if edge5 != nil {
		blen5 = edgeThickness(readLen, edge5)
	}
	if edge3 != nil {
		blen3 = edgeThickness(readLen, edge3)
	}

	if edge5 == nil && edge3 == nil {
		log.Error(fmt.Sprintf("Unitig::AddAndPlaceFrag()-- WARNING: failed to place frag %d into unitig %d; no edges to the unitig.", readID, u.id))
		return false
	}

	if blen3 < blen5 {
		edge3 = nil
	} else {
		edge5 = nil
	}

	frag5 := UFNode{Ident: readID}
	frag3 := UFNode{Ident: readID}
	var bidx5, bidx3 int

	if !u.PlaceFragEdges(&frag5, &bidx5, edge5, &frag3, &bidx3, edge3, fi) {
		return false
	}

	frag := frag5
	if edge3 != nil {
		frag = frag3
	}

	u.AddRead(frag, 0, report)
	return true
}
