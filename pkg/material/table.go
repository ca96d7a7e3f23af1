package material

import (
	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// Handle addresses a Material inside a Table
type Handle int

// Table owns the materials of a scene. Geometry refers to entries by Handle,
// so a single material can be shared by any number of objects.
// A Table must not be modified while a render is reading it.
type Table struct {
	materials []Material
}

// NewTable creates an empty material table
func NewTable() *Table {
	return &Table{}
}

// Add stores m and returns its handle
func (t *Table) Add(m Material) Handle {
	t.materials = append(t.materials, m)
	return Handle(len(t.materials) - 1)
}

// Len returns the number of stored materials
func (t *Table) Len() int {
	return len(t.materials)
}

// Get returns the material for h
func (t *Table) Get(h Handle) (Material, bool) {
	if h < 0 || int(h) >= len(t.materials) {
		return Material{}, false
	}
	return t.materials[h], true
}

// Scatter dispatches to the material addressed by h.
// An unknown handle absorbs the ray.
func (t *Table) Scatter(h Handle, rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	m, ok := t.Get(h)
	if !ok {
		return ScatterResult{}, false
	}
	return m.Scatter(rayIn, hit, sampler)
}

// Validate checks every stored material
func (t *Table) Validate() error {
	for i, m := range t.materials {
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "material %d", i)
		}
	}
	return nil
}
