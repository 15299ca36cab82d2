package material

import (
	"math"

	"github.com/pgodschalk/raytracing/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at surface coordinates (u, v) and point p
	Evaluate(u, v float64, p core.Point3) core.Color
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(u, v float64, p core.Point3) core.Color {
	return s.Color
}

// CheckerTexture alternates between two sources in a 3D checker pattern
type CheckerTexture struct {
	invScale float64
	Even     ColorSource
	Odd      ColorSource
}

// NewCheckerTexture creates a checker with cells of size scale
func NewCheckerTexture(scale float64, even, odd core.Color) *CheckerTexture {
	return &CheckerTexture{
		invScale: 1.0 / scale,
		Even:     NewSolidColor(even),
		Odd:      NewSolidColor(odd),
	}
}

// Evaluate picks the even or odd source from the cell containing p
func (c *CheckerTexture) Evaluate(u, v float64, p core.Point3) core.Color {
	x := int(math.Floor(c.invScale * p.X))
	y := int(math.Floor(c.invScale * p.Y))
	z := int(math.Floor(c.invScale * p.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(u, v, p)
	}
	return c.Odd.Evaluate(u, v, p)
}
