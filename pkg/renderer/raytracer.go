package renderer

import (
	"math"

	"github.com/pgodschalk/raytracing/pkg/core"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they left
const MinHitDistance = 0.001

var (
	backgroundTop    = core.NewVec3(0.5, 0.7, 1.0) // Light blue
	backgroundBottom = core.NewVec3(1.0, 1.0, 1.0) // White
)

// RayColor returns the radiance carried back along ray. Each bounce consumes
// one unit of depth; an exhausted budget contributes black.
func RayColor(ray core.Ray, depth int, world core.Shape, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(MinHitDistance, math.Inf(1)))
	if !isHit {
		return backgroundGradient(ray)
	}

	// A surface without a material absorbs like the base material
	if hit.Material == nil {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, depth-1, world, sampler))
}

// backgroundGradient blends white to light blue with the ray's vertical direction
func backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-a)*white + a*blue
	return backgroundBottom.Multiply(1.0 - a).Add(backgroundTop.Multiply(a))
}
