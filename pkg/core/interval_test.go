package core

import (
	"math"
	"testing"
)

func TestInterval_Size(t *testing.T) {
	if got := NewInterval(1, 5).Size(); got != 4 {
		t.Errorf("Expected size 4, got %f", got)
	}
	if got := EmptyInterval.Size(); !math.IsInf(got, -1) {
		t.Errorf("Expected empty interval size -Inf, got %f", got)
	}
	if got := UniverseInterval.Size(); !math.IsInf(got, 1) {
		t.Errorf("Expected universe interval size +Inf, got %f", got)
	}
}

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	i := NewInterval(1, 5)

	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{0.9, false, false},
		{1.0, true, false},
		{3.0, true, true},
		{5.0, true, false},
		{5.1, false, false},
	}

	for _, tt := range tests {
		if got := i.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%v): expected %t, got %t", tt.x, tt.contains, got)
		}
		if got := i.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%v): expected %t, got %t", tt.x, tt.surrounds, got)
		}
	}

	if EmptyInterval.Contains(0) || EmptyInterval.Surrounds(0) {
		t.Error("Empty interval should contain nothing")
	}
	if !UniverseInterval.Surrounds(1e300) {
		t.Error("Universe interval should surround every finite value")
	}
}

func TestInterval_Clamp(t *testing.T) {
	i := NewInterval(1, 5)
	for _, tt := range []struct{ in, out float64 }{{3, 3}, {0, 1}, {6, 5}} {
		if got := i.Clamp(tt.in); got != tt.out {
			t.Errorf("Clamp(%v): expected %v, got %v", tt.in, tt.out, got)
		}
	}
}

func TestAABB_TranslateAndUnion(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	moved := box.Translate(NewVec3(2, 3, 4))

	if moved.Min != NewVec3(1, 2, 3) || moved.Max != NewVec3(3, 4, 5) {
		t.Errorf("Unexpected translated box %v", moved)
	}

	union := EmptyAABB.Union(box)
	if union != box {
		t.Errorf("Empty box should be the identity for Union, got %v", union)
	}

	other := NewAABB(NewVec3(0, 5, -1), NewVec3(2, 6, 0))
	if got := box.Union(other); got.Min != NewVec3(-1, -1, -1) || got.Max != NewVec3(2, 6, 1) {
		t.Errorf("Unexpected union %v", got)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	tests := []struct {
		name          string
		direction     Vec3
		expectedFront bool
		expected      Vec3
	}{
		{"front face", NewVec3(0, 0, -1), true, outward},
		{"back face", NewVec3(0, 0, 1), false, outward.Negate()},
		{"parallel ray", NewVec3(1, 0, 0), false, outward.Negate()},
		{"zero direction", NewVec3(0, 0, 0), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec HitRecord
			rec.SetFaceNormal(NewRay(NewVec3(0, 0, 0), tt.direction), outward)

			if rec.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, rec.FrontFace)
			}
			if rec.Normal != tt.expected {
				t.Errorf("Expected normal %v, got %v", tt.expected, rec.Normal)
			}
		})
	}
}
