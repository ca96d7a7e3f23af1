package material

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the lower-case name used in scene files
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material is a closed set of surface models selected by Kind.
// Only the fields relevant to Kind are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Color // Lambertian and Metal
	Fuzz            float64    // Metal: 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractiveIndex float64    // Dielectric
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// Scatter proposes a scattered ray for rayIn at hit.
// Returns false when the material absorbs the ray.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Validate reports configuration values no scattering model can use
func (m Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		if !m.Albedo.IsFinite() {
			return errors.Errorf("%s albedo %v is not finite", m.Kind, m.Albedo)
		}
		if m.Albedo.X < 0 || m.Albedo.Y < 0 || m.Albedo.Z < 0 {
			return errors.Errorf("%s albedo %v has negative components", m.Kind, m.Albedo)
		}
	case KindDielectric:
		if math.IsNaN(m.RefractiveIndex) || m.RefractiveIndex <= 0 {
			return errors.Errorf("dielectric refractive index %v must be positive", m.RefractiveIndex)
		}
	default:
		return errors.Errorf("unknown material kind %d", int(m.Kind))
	}
	return nil
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Unit surface normal, always facing against the incoming ray
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether ray hit the front face
	Material  Handle      // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
