package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomUnitVector_UnitLength(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var sum Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit length, got %f for %v", v.Length(), v)
		}
		sum = sum.Add(v)
	}

	// Uniform over the sphere, so the mean should be close to the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestNewSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected samplers with the same seed to agree")
		}
	}
}

func TestDegreesToRadians(t *testing.T) {
	tests := []struct{ degrees, radians float64 }{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := DegreesToRadians(tt.degrees); math.Abs(got-tt.radians) > 1e-15 {
			t.Errorf("DegreesToRadians(%v): expected %v, got %v", tt.degrees, tt.radians, got)
		}
	}
}
