package passes

import (
	"testing"

	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

func TestBreakUnitigsOnIntersectionsDisabledIsNoOp(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 100}})
	tv := tig.New(fi.NumReads())
	og := bestoverlap.NewGraph(nil, nil, nil)

	cfg := bogartcfg.NewDefault()
	cfg.EnableIntersectionBreaking = false

	breaks := BreakUnitigsOnIntersections(tv, og, fi, cfg)
	if breaks != nil {
		t.Fatalf("breaks = %v, want nil when disabled", breaks)
	}
}

func TestBreakUnitigsOnIntersectionsBreaksAtInvasion(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{
		{ID: 1, Length: 200}, {ID: 2, Length: 200}, {ID: 3, Length: 200}, {ID: 4, Length: 200},
	})
	tv := tig.New(fi.NumReads())

	// u1 holds reads 1,2; read 1's 3' best edge points into u2 (invader),
	// which is large enough not to be treated as a spur.
	u1, _ := tv.NewUnitig(false)
	u1.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 200}}, 0, false)
	u1.AddRead(tig.UFNode{Ident: 2, Position: tig.Position{Bgn: 100, End: 300}}, 0, false)

	u2, _ := tv.NewUnitig(false)
	u2.AddRead(tig.UFNode{Ident: 3, Position: tig.Position{Bgn: 0, End: 200}}, 0, false)
	u2.AddRead(tig.UFNode{Ident: 4, Position: tig.Position{Bgn: 100, End: 300}}, 0, false)

	best3 := map[readinfo.ReadID]bestoverlap.EdgeOverlap{
		1: {FragID: 3}, // read 1's 3' edge points into u2 -- invasion at the first node
	}
	og := bestoverlap.NewGraph(nil, best3, nil)

	cfg := bogartcfg.NewDefault()
	cfg.MinBreakFrags = 1
	cfg.MinBreakLength = 10

	breaks := BreakUnitigsOnIntersections(tv, og, fi, cfg)
	if len(breaks) != 1 {
		t.Fatalf("len(breaks) = %d, want 1", len(breaks))
	}
	if breaks[0].ReadID != 1 {
		t.Fatalf("break ReadID = %d, want 1", breaks[0].ReadID)
	}
	if u1.NumReads() != 1 {
		t.Fatalf("u1 has %d reads after break, want 1", u1.NumReads())
	}
	newTig := tv.Get(breaks[0].TigID)
	if newTig == nil || newTig.NumReads() != 1 {
		t.Fatalf("new unitig from break should hold the remaining read")
	}
}

func TestBreakUnitigsOnIntersectionsIgnoresSpur(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{
		{ID: 1, Length: 200}, {ID: 2, Length: 200}, {ID: 3, Length: 5},
	})
	tv := tig.New(fi.NumReads())

	u1, _ := tv.NewUnitig(false)
	u1.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 200}}, 0, false)
	u1.AddRead(tig.UFNode{Ident: 2, Position: tig.Position{Bgn: 100, End: 300}}, 0, false)

	// u2 is a tiny single-read spur with no edges of its own.
	u2, _ := tv.NewUnitig(false)
	u2.AddRead(tig.UFNode{Ident: 3, Position: tig.Position{Bgn: 0, End: 5}}, 0, false)

	best3 := map[readinfo.ReadID]bestoverlap.EdgeOverlap{
		1: {FragID: 3},
	}
	og := bestoverlap.NewGraph(nil, best3, nil)

	cfg := bogartcfg.NewDefault()
	cfg.MinBreakFrags = 1
	cfg.MinBreakLength = 10

	breaks := BreakUnitigsOnIntersections(tv, og, fi, cfg)
	if len(breaks) != 0 {
		t.Fatalf("len(breaks) = %d, want 0 (invader is a spur)", len(breaks))
	}
	if u1.NumReads() != 2 {
		t.Fatalf("u1 should be untouched, has %d reads", u1.NumReads())
	}
}
