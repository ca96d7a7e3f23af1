package geometry

import (
	"math"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

// Sphere represents a sphere shape.
// A negative radius flips the outward normal, which gives hollow glass shells.
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Material material.Handle
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64, mat material.Handle) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	// A zero-length direction has no roots to speak of
	if a == 0 || s.Radius == 0 {
		return material.HitRecord{}, false
	}

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || math.IsNaN(discriminant) {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inOpenInterval(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !inOpenInterval(root, tMin, tMax) {
			return material.HitRecord{}, false
		}
	}

	hitRecord := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal points from center to hit point
	outwardNormal := hitRecord.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// inOpenInterval reports tMin < t < tMax; NaN is never inside
func inOpenInterval(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}
