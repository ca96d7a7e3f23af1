package material

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Color) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// scatterLambertian scatters around the normal using a unit-sphere offset
func (m Material) scatterLambertian(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.Albedo,
	}, true
}
