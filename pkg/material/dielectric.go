package material

import (
	"math"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// scatterDielectric reflects or refracts with probability given by Schlick's approximation
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass never absorbs
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractiveIndex // entering
	} else {
		refractionRatio = m.RefractiveIndex // exiting
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Check for total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
