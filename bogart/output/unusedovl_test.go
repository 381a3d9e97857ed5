package output

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/grailbio/testutil"

	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

func TestWriteUnusedOverlapsReportsCrossTigEdgesOnly(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	fi := readinfo.New([]readinfo.Record{
		{ID: 1, Length: 100}, {ID: 2, Length: 100}, {ID: 3, Length: 100},
	})
	tv := tig.New(fi.NumReads())

	u1, _ := tv.NewUnitig(false)
	u1.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 100}}, 0, false)
	u1.AddRead(tig.UFNode{Ident: 2, Position: tig.Position{Bgn: 50, End: 150}}, 0, false)

	u2, _ := tv.NewUnitig(false)
	u2.AddRead(tig.UFNode{Ident: 3, Position: tig.Position{Bgn: 0, End: 100}}, 0, false)

	// Read 1's best 3' edge points to read 2, which is in the same unitig
	// (used, should not be reported); read 2's best 3' edge points to read
	// 3, which ended up in a different unitig (unused, should be reported).
	best3 := map[readinfo.ReadID]bestoverlap.EdgeOverlap{
		1: {FragID: 2, AHang: 50, BHang: 50},
		2: {FragID: 3, AHang: 20, BHang: -10},
	}
	og := bestoverlap.NewGraph(nil, best3, nil)

	ctx := context.Background()
	prefix := tempDir + "/asm"
	if err := WriteUnusedOverlaps(ctx, tv, fi, og, prefix); err != nil {
		t.Fatalf("WriteUnusedOverlaps: %v", err)
	}

	data, err := os.ReadFile(prefix + ".unused.ovl")
	if err != nil {
		t.Fatalf("reading unused.ovl: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "alt:2") || !strings.Contains(out, "bid:3") {
		t.Fatalf("expected read 2 -> read 3 edge reported, got:\n%s", out)
	}
	if strings.Contains(out, "alt:1") {
		t.Fatalf("read 1 -> read 2 edge is used (same unitig), should not be reported:\n%s", out)
	}
}

func TestWriteUnusedOverlapsSkipsDeletedReads(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 0}}) // deleted read
	tv := tig.New(fi.NumReads())
	og := bestoverlap.NewGraph(nil, nil, nil)

	ctx := context.Background()
	prefix := tempDir + "/asm"
	if err := WriteUnusedOverlaps(ctx, tv, fi, og, prefix); err != nil {
		t.Fatalf("WriteUnusedOverlaps: %v", err)
	}

	data, err := os.ReadFile(prefix + ".unused.ovl")
	if err != nil {
		t.Fatalf("reading unused.ovl: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty output for an all-deleted read set, got:\n%s", data)
	}
}
