package passes

import (
	"testing"

	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

func TestPromoteToSingletonEnabled(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 40}})
	tv := tig.New(fi.NumReads())

	promoted := PromoteToSingleton(tv, fi, true)
	if promoted != 1 {
		t.Fatalf("promoted = %d, want 1", promoted)
	}
	if tv.InUnitig(1) == 0 {
		t.Fatalf("read 1 not placed after promotion")
	}
	if fi.Ignored(1) {
		t.Fatalf("read 1 marked ignored, want not ignored when promoted")
	}
}

func TestPromoteToSingletonDisabledMarksIgnored(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 40}})
	tv := tig.New(fi.NumReads())

	promoted := PromoteToSingleton(tv, fi, false)
	if promoted != 0 {
		t.Fatalf("promoted = %d, want 0 when disabled", promoted)
	}
	if tv.InUnitig(1) != 0 {
		t.Fatalf("read 1 should not be placed when promotion is disabled")
	}
	if !fi.Ignored(1) {
		t.Fatalf("read 1 should be marked ignored when promotion is disabled")
	}
}

func TestPromoteToSingletonSkipsAlreadyPlaced(t *testing.T) {
	fi := readinfo.New([]readinfo.Record{{ID: 1, Length: 40}})
	tv := tig.New(fi.NumReads())
	u, _ := tv.NewUnitig(false)
	u.AddRead(tig.UFNode{Ident: 1, Position: tig.Position{Bgn: 0, End: 40}}, 0, false)

	promoted := PromoteToSingleton(tv, fi, true)
	if promoted != 0 {
		t.Fatalf("promoted = %d, want 0 for an already-placed read", promoted)
	}
}
