package integrator

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/geometry"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray.
	// world and materials are only read, so one integrator may serve many goroutines
	// as long as each passes its own sampler.
	RayColor(ray core.Ray, world geometry.Hittable, materials *material.Table, sampler core.Sampler) core.Color
}
