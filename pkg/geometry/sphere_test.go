package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pgodschalk/raytracing/pkg/core"
)

// mockMaterial implements core.Material for testing
type mockMaterial struct{}

func (mockMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mockMaterial{})
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	material := mockMaterial{}
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1000.0))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if math.Abs(hit.Normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(hit.Normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(hit.Normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if hit.Material != material {
				t.Errorf("Expected hit record to carry the sphere material")
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mockMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Near root outside tMax
	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Both roots below tMin
	hit, isHit = sphere.Hit(ray, core.NewInterval(3.5, 1000.0))
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.5, 1000.0))
	if !isHit {
		t.Fatal("Expected far root hit")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected far root to be a back face hit")
	}

	// Endpoints are excluded
	if _, isHit := sphere.Hit(ray, core.NewInterval(1.0, 1000.0)); !isHit {
		t.Fatal("Expected far root when near root sits on the open lower bound")
	}
	if _, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1.0)); isHit {
		t.Error("Expected miss when the near root sits on the open upper bound")
	}
}

func TestSphere_Hit_RandomRaysInvariants(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -1.5), 0.8, mockMaterial{})
	rayT := core.NewInterval(0.001, 100)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2)
		direction := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, rayT)
		if !isHit {
			continue
		}
		hits++

		if !rayT.Surrounds(hit.T) {
			t.Fatalf("t=%f outside interval %v", hit.T, rayT)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit normal, got length %f", hit.Normal.Length())
		}
		outward := hit.Point.Subtract(sphere.Center).Divide(sphere.Radius)
		if hit.FrontFace != (ray.Direction.Dot(outward) < 0) {
			t.Fatalf("Front face flag disagrees with outward normal")
		}
		if ray.Direction.Dot(hit.Normal) > 0 {
			t.Fatalf("Normal %v points along ray direction %v", hit.Normal, ray.Direction)
		}
		if hit.U < 0 || hit.U > 1 || hit.V < 0 || hit.V > 1 {
			t.Fatalf("Surface coordinates out of range: (%f, %f)", hit.U, hit.V)
		}
	}

	if hits == 0 {
		t.Fatal("Expected at least one random ray to hit the sphere")
	}
}

func TestSphere_SurfaceCoordinates(t *testing.T) {
	tests := []struct {
		point core.Vec3
		u, v  float64
	}{
		{core.NewVec3(1, 0, 0), 0.5, 0.5},
		{core.NewVec3(0, 1, 0), 0.5, 1.0},
		{core.NewVec3(0, -1, 0), 0.5, 0.0},
		{core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{core.NewVec3(0, 0, 1), 0.25, 0.5},
		{core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		u, v := sphereUV(tt.point)
		if math.Abs(u-tt.u) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
			t.Errorf("sphereUV(%v): expected (%f, %f), got (%f, %f)", tt.point, tt.u, tt.v, u, v)
		}
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, mockMaterial{})
	box := sphere.BoundingBox()

	if box.Min != core.NewVec3(0.5, 1.5, 2.5) || box.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

func TestSphere_DegenerateRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
	}{
		{"zero radius", 0},
		{"negative radius", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, -1), tt.radius, mockMaterial{})
			if sphere.Radius != 0 {
				t.Errorf("Expected radius clamped to 0, got %f", sphere.Radius)
			}

			// Aimed straight at the center the discriminant is exactly zero
			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
			if hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, math.Inf(1))); isHit {
				t.Errorf("Expected no hit on a point sphere, got t=%f normal=%v", hit.T, hit.Normal)
			}
		})
	}
}
