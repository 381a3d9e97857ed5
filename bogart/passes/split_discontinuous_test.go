package passes

import (
	"testing"

	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

func TestSplitDiscontinuousUnitigsSplitsOnGap(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{
		{ID: 1, Length: 100}, {ID: 2, Length: 100}, {ID: 3, Length: 100},
	})
	tv := tig.New(fi.NumReads())
	u, _ := tv.NewUnitig(false)
	// Reads 1,2 dovetail-connect (overlap), read 3 starts far past a gap
	// larger than MinOverlapLen beyond read 2's end.
	u.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 100}}, 0, false)
	u.AddRead(tig.UFNode{Ident: 2, Position: tig.Position{Bgn: 50, End: 150}}, 0, false)
	u.AddRead(tig.UFNode{Ident: 3, Position: tig.Position{Bgn: 500, End: 600}}, 0, false)

	cfg := bogartcfg.NewDefault()
	created := SplitDiscontinuousUnitigs(tv, fi, cfg)

	if created != 1 {
		t.Fatalf("created = %d, want 1", created)
	}
	if u.NumReads() != 2 {
		t.Fatalf("original unitig has %d reads, want 2 after truncation", u.NumReads())
	}
	if tv.InUnitig(3) == u.ID() {
		t.Fatalf("read 3 should have moved to a new unitig")
	}
	newTigID := tv.InUnitig(3)
	if newTigID == 0 {
		t.Fatalf("read 3 should still be placed somewhere")
	}
	nu := tv.Get(newTigID)
	if nu.NumReads() != 1 {
		t.Fatalf("new unitig has %d reads, want 1", nu.NumReads())
	}
	if nu.Ufpath[0].Position.Bgn != 0 {
		t.Fatalf("new unitig not renormalized to start at 0: %+v", nu.Ufpath[0].Position)
	}
}

func TestSplitDiscontinuousUnitigsNoGapIsNoOp(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 100}, {ID: 2, Length: 100}})
	tv := tig.New(fi.NumReads())
	u, _ := tv.NewUnitig(false)
	u.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 100}}, 0, false)
	u.AddRead(tig.UFNode{Ident: 2, Position: tig.Position{Bgn: 50, End: 150}}, 0, false)

	cfg := bogartcfg.NewDefault()
	created := SplitDiscontinuousUnitigs(tv, fi, cfg)

	if created != 0 {
		t.Fatalf("created = %d, want 0 for a contiguous unitig", created)
	}
	if u.NumReads() != 2 {
		t.Fatalf("unitig should be untouched, has %d reads", u.NumReads())
	}
}

func TestSplitDiscontinuousOrphanedContaineeReattaches(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{
		{ID: 1, Length: 100}, {ID: 2, Length: 100}, {ID: 3, Length: 30},
	})
	tv := tig.New(fi.NumReads())

	// Read 1's container unitig already exists, separate from the unitig
	// being split.
	containerTig, _ := tv.NewUnitig(false)
	containerTig.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 100}}, 0, false)

	// Read 3 is contained by read 1, unmated, but placed (in this unitig)
	// far enough from read 2 to form its own trailing group once the gap
	// pass splits this unitig. A lone contained+unmated tail group must be
	// reattached to read 1's unitig rather than become its own singleton.
	u, _ := tv.NewUnitig(false)
	u.AddRead(tig.UFNode{Ident: 2, Position: tig.Position{Bgn: 0, End: 100}}, 0, false)
	u.AddRead(tig.UFNode{Ident: 3, Contained: 1, Position: tig.Position{Bgn: 500, End: 530}}, 0, false)

	cfg := bogartcfg.NewDefault()
	created := SplitDiscontinuousUnitigs(tv, fi, cfg)

	if created != 0 {
		t.Fatalf("created = %d, want 0 (the orphaned containee is reattached, not split into a new unitig)", created)
	}
	if tv.InUnitig(3) != containerTig.ID() {
		t.Fatalf("InUnitig(3) = %d, want reattached to container's unitig %d", tv.InUnitig(3), containerTig.ID())
	}
	if u.NumReads() != 1 {
		t.Fatalf("split unitig has %d reads, want 1 (read 2 only)", u.NumReads())
	}
}
