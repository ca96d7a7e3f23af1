package geometry

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

// HittableList is the scene aggregate: a brute-force list of spheres.
// It is built once and then only read, so concurrent Hit calls are safe.
type HittableList struct {
	Spheres []Sphere
}

// NewHittableList creates a list holding the given spheres
func NewHittableList(spheres ...Sphere) *HittableList {
	return &HittableList{Spheres: spheres}
}

// Add appends a sphere. Only valid while the scene is being built.
func (l *HittableList) Add(s Sphere) {
	l.Spheres = append(l.Spheres, s)
}

// Clear removes every sphere
func (l *HittableList) Clear() {
	l.Spheres = nil
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Spheres)
}

// Hit returns the closest intersection among all spheres
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, sphere := range l.Spheres {
		if hit, isHit := sphere.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
