package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	v := []float32{3, 4}
	NormalizeL2(v)
	var sum float64
	for _, x := range v {
		sum += float64(x * x)
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-6 {
		t.Errorf("norm after NormalizeL2 = %v, want 1.0", math.Sqrt(sum))
	}
}

func TestNormalizeL2_zeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	NormalizeL2(v)
	for i, x := range v {
		if x != 0 {
			t.Errorf("v[%d] = %v, zero vector should be unchanged", i, x)
		}
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.123456789, 6, 0.123457},
		{0.123454, 5, 0.12345},
		// Apparent midpoints whose float64 value sits just below: the
		// correctly rounded result is the lower neighbor.
		{12.345, 2, 12.34},
		{2.675, 2, 2.67},
		{-0.1234565, 6, -0.123456},
		{1.0, 6, 1.0},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.v, tt.places); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestElapsedMs(t *testing.T) {
	// 1_234_567ns = 1.234567ms, rounds to 1.23
	if got := ElapsedMs(1234567); got != 1.23 {
		t.Errorf("ElapsedMs(1234567) = %v, want 1.23", got)
	}
	if got := ElapsedMs(0); got != 0 {
		t.Errorf("ElapsedMs(0) = %v, want 0", got)
	}
}
