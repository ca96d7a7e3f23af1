package material

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzz float64) Material {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: fuzz}
}

// scatterMetal reflects about the normal, perturbed by the fuzz radius
func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// Only scatter if the ray is above the surface (not absorbed)
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
