package geometry

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

// Hittable is anything a ray can be intersected with.
// Hit returns the closest intersection with t strictly inside (tMin, tMax).
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
