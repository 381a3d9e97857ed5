package tig

import (
	"testing"

	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/readinfo"
)

func TestPlaceFragEdgesNoEdgesReturnsFalse(t *testing.T) {
	_, u := newTestVector(t)
	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 10}})

	var frag5, frag3 UFNode
	var bidx5, bidx3 int
	frag5.Ident, frag3.Ident = 1, 1

	ok := u.PlaceFragEdges(&frag5, &bidx5, nil, &frag3, &bidx3, nil, fi)
	if ok {
		t.Fatalf("PlaceFragEdges() = true, want false with no edges")
	}
	if bidx5 != -1 || bidx3 != -1 {
		t.Fatalf("bidx5/bidx3 = %d/%d, want -1/-1", bidx5, bidx3)
	}
}

func TestPlaceFragEdgesDiscardsEdgeOutsideUnitig(t *testing.T) {
	_, u := newTestVector(t)
	u.AddRead(UFNode{Ident: 10, Position: Position{Bgn: 0, End: 50}}, 0, false)
	fi := readinfo.New([]readinfo.Record{{ID: 10, Length: 50}, {ID: 20, Length: 30}})

	var frag5, frag3 UFNode
	var bidx5, bidx3 int
	frag5.Ident, frag3.Ident = 20, 20

	// edge5 points to read 99, which is not in this unitig.
	edge5 := &bestoverlap.EdgeOverlap{FragID: 99}
	ok := u.PlaceFragEdges(&frag5, &bidx5, edge5, &frag3, &bidx3, nil, fi)

	if ok {
		t.Fatalf("PlaceFragEdges() = true, want false when the only edge is outside the unitig")
	}
	if bidx5 != -1 {
		t.Fatalf("bidx5 = %d, want -1 for a discarded edge", bidx5)
	}
}

func TestPlaceFragEdgesZeroFragIDEdgeIsDiscarded(t *testing.T) {
	_, u := newTestVector(t)
	u.AddRead(UFNode{Ident: 10, Position: Position{Bgn: 0, End: 50}}, 0, false)
	fi := readinfo.New([]readinfo.Record{{ID: 10, Length: 50}, {ID: 20, Length: 30}})

	var frag5, frag3 UFNode
	var bidx5, bidx3 int
	frag5.Ident, frag3.Ident = 20, 20

	edge5 := &bestoverlap.EdgeOverlap{FragID: 0}
	ok := u.PlaceFragEdges(&frag5, &bidx5, edge5, &frag3, &bidx3, nil, fi)
	if ok {
		t.Fatalf("PlaceFragEdges() = true, want false for a FragID==0 edge")
	}
}

func TestPlaceFragEdgesPlacesFromKnownEdge(t *testing.T) {
	_, u := newTestVector(t)
	u.AddRead(UFNode{Ident: 10, Position: Position{Bgn: 0, End: 50}}, 0, false)
	fi := readinfo.New([]readinfo.Record{{ID: 10, Length: 50}, {ID: 20, Length: 30}})

	var frag5, frag3 UFNode
	var bidx5, bidx3 int
	frag5.Ident, frag3.Ident = 20, 20

	// The new fragment's 5' end overlaps the parent's 3' end (Frag3p=true,
	// wasEnd3p=false -> not the near end -> hangs negated).
	edge5 := &bestoverlap.EdgeOverlap{FragID: 10, Frag3p: true, AHang: 5, BHang: -2}
	ok := u.PlaceFragEdges(&frag5, &bidx5, edge5, &frag3, &bidx3, nil, fi)

	if !ok {
		t.Fatalf("PlaceFragEdges() = false, want true")
	}
	if bidx5 != 0 {
		t.Fatalf("bidx5 = %d, want 0", bidx5)
	}
	if frag5.Parent != 10 {
		t.Fatalf("frag5.Parent = %d, want 10", frag5.Parent)
	}
	if frag5.AHang != -5 || frag5.BHang != 2 {
		t.Fatalf("frag5 hangs = (%d,%d), want (-5,2)", frag5.AHang, frag5.BHang)
	}
}
