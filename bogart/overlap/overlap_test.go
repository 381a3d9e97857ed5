package overlap

import (
	"testing"

	"github.com/grailbio/bogart/bogart/readinfo"
)

func TestLength(t *testing.T) {
	cases := []struct {
		name       string
		o          Overlap
		trueLength uint32
		want       int32
	}{
		{"no hangs", Overlap{AHang: 0, BHang: 0}, 100, 100},
		{"positive ahang trims left", Overlap{AHang: 10, BHang: 0}, 100, 90},
		{"negative bhang trims right", Overlap{AHang: 0, BHang: -10}, 100, 90},
		{"negative ahang ignored", Overlap{AHang: -5, BHang: 0}, 100, 100},
		{"positive bhang ignored", Overlap{AHang: 0, BHang: 5}, 100, 100},
		{"both trim", Overlap{AHang: 10, BHang: -10}, 100, 80},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.o.Length(c.trueLength); got != c.want {
				t.Fatalf("Length() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestIsContainment(t *testing.T) {
	if !(Overlap{AHang: 1, BHang: -1}).IsContainment() {
		t.Fatalf("expected containment for AHang>=0, BHang<=0")
	}
	if (Overlap{AHang: -1, BHang: -1}).IsContainment() {
		t.Fatalf("expected no containment when AHang < 0")
	}
	if (Overlap{AHang: 1, BHang: 1}).IsContainment() {
		t.Fatalf("expected no containment when BHang > 0")
	}
	if !(Overlap{AHang: 0, BHang: 0}).IsContainment() {
		t.Fatalf("expected containment for zero hangs (dovetail at both ends is also containment)")
	}
}

func TestCacheIndexesBothSides(t *testing.T) {
	c := NewCache([]Overlap{
		{A: 1, B: 2, AHang: 5, BHang: -3, ErateBp1: 0.01},
	})

	a := c.Overlaps(1)
	if len(a) != 1 || a[0].A != 1 || a[0].B != 2 || a[0].AHang != 5 || a[0].BHang != -3 {
		t.Fatalf("Overlaps(1) = %+v, want the original record", a)
	}

	b := c.Overlaps(2)
	if len(b) != 1 {
		t.Fatalf("Overlaps(2) has %d entries, want 1", len(b))
	}
	if b[0].A != 2 || b[0].B != 1 {
		t.Fatalf("Overlaps(2)[0] = %+v, want A=2 B=1", b[0])
	}
	if b[0].AHang != -5 || b[0].BHang != 3 {
		t.Fatalf("Overlaps(2)[0] hangs = (%d,%d), want (-5,3)", b[0].AHang, b[0].BHang)
	}
	if b[0].ErateBp1 != 0.01 {
		t.Fatalf("Overlaps(2)[0].ErateBp1 = %v, want 0.01", b[0].ErateBp1)
	}
}

func TestCacheFlippedOverlapKeepsHangSigns(t *testing.T) {
	c := NewCache([]Overlap{
		{A: 1, B: 2, AHang: 5, BHang: -3, Flipped: true},
	})
	b := c.Overlaps(2)
	if len(b) != 1 {
		t.Fatalf("Overlaps(2) has %d entries, want 1", len(b))
	}
	if b[0].AHang != -3 || b[0].BHang != 5 {
		t.Fatalf("flipped overlap hangs = (%d,%d), want (-3,5)", b[0].AHang, b[0].BHang)
	}
	if !b[0].Flipped {
		t.Fatalf("expected Flipped to stay true across flip()")
	}
}

func TestCacheUnknownReadReturnsEmpty(t *testing.T) {
	c := NewCache(nil)
	if got := c.Overlaps(readinfo.ReadID(42)); got != nil {
		t.Fatalf("Overlaps(42) = %v, want nil", got)
	}
}
