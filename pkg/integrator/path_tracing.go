package integrator

import (
	"math"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/geometry"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

// ShadowAcneEpsilon is the minimum hit distance, so scattered rays do not re-hit their origin surface
const ShadowAcneEpsilon = 0.001

var (
	skyBottom = core.NewVec3(1.0, 1.0, 1.0) // white horizon
	skyTop    = core.NewVec3(0.5, 0.7, 1.0) // blue zenith
)

// PathTracingIntegrator implements unidirectional path tracing with one scattered ray per bounce
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray.
// With no bounces allowed, camera rays still see the sky but any surface is black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, materials *material.Table, sampler core.Sampler) core.Color {
	if pt.MaxDepth <= 0 {
		if _, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1)); isHit {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}
		return BackgroundGradient(ray)
	}
	return pt.rayColor(ray, world, materials, sampler, pt.MaxDepth)
}

// rayColor recurses once per bounce; depth bounds the recursion
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hittable, materials *material.Table, sampler core.Sampler, depth int) core.Color {
	// Out of bounces: no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}

	scatter, didScatter := materials.Scatter(hit.Material, ray, hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.rayColor(scatter.Scattered, world, materials, sampler, depth-1))
}

// BackgroundGradient returns the sky color seen along r
func BackgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return skyBottom.Multiply(1.0 - t).Add(skyTop.Multiply(t))
}
