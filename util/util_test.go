package util

import (
	"testing"
)

func TestCrossfadeLut(t *testing.T) {
	lut := CrossfadeLut(60)

	if lut[0] != 0 {
		t.Errorf("lut[0] = %v, want 0", lut[0])
	}
	if lut[len(lut)-1] != 1 {
		t.Errorf("lut[last] = %v, want 1", lut[len(lut)-1])
	}
	for i := 1; i < len(lut); i++ {
		if lut[i] < lut[i-1] {
			t.Fatalf("lut not monotonic at %d: %v < %v", i, lut[i], lut[i-1])
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
