package vmath

import "testing"

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at %d", i)
		}
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("zero seed should not produce a stuck generator")
	}
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(7)
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{"size", 2, 20},
		{"velocity", -10, 10},
		{"unit", 0, 1},
		{"tiny", 1, 1.0000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 10000; i++ {
				v := r.Range(tt.lo, tt.hi)
				if v < tt.lo || v >= tt.hi {
					t.Fatalf("Range(%v, %v) = %v, out of bounds", tt.lo, tt.hi, v)
				}
			}
		})
	}
}

func TestFastRandIntn(t *testing.T) {
	r := NewFastRand(3)
	if got := r.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		v := r.Intn(256)
		if v < 0 || v > 255 {
			t.Fatalf("Intn(256) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) < 200 {
		t.Errorf("poor coverage: %d distinct values", len(seen))
	}
}
