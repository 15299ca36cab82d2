package material

import "github.com/pgodschalk/raytracing/pkg/core"

// Absorber never scatters; every ray that reaches it is absorbed
type Absorber struct{}

// NewAbsorber creates a new absorbing material
func NewAbsorber() *Absorber {
	return &Absorber{}
}

// Scatter always reports no scattering
func (a *Absorber) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
