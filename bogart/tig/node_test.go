package tig

import "testing"

func TestPositionForward(t *testing.T) {
	p := Position{Bgn: 10, End: 30}
	if p.Min() != 10 {
		t.Fatalf("Min() = %d, want 10", p.Min())
	}
	if p.Max() != 30 {
		t.Fatalf("Max() = %d, want 30", p.Max())
	}
	if p.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", p.Len())
	}
	if p.Reverse() {
		t.Fatalf("Reverse() = true, want false")
	}
}

func TestPositionReverse(t *testing.T) {
	p := Position{Bgn: 30, End: 10}
	if p.Min() != 10 {
		t.Fatalf("Min() = %d, want 10", p.Min())
	}
	if p.Max() != 30 {
		t.Fatalf("Max() = %d, want 30", p.Max())
	}
	if p.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", p.Len())
	}
	if !p.Reverse() {
		t.Fatalf("Reverse() = false, want true")
	}
}

func TestPositionZeroLength(t *testing.T) {
	p := Position{Bgn: 5, End: 5}
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Len())
	}
	if p.Reverse() {
		t.Fatalf("Reverse() = true, want false for equal coordinates")
	}
}
