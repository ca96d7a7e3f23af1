package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

const glassRow = `
name: glass-row
description: Three glass spheres over a matte floor
camera:
  look_from: [0, 1, 3]
  look_at: [0, 0, -1]
  vfov: 40
  aperture: 0.05
sampling:
  width: 320
  aspect_ratio: 2
  samples_per_pixel: 16
  max_depth: 0
  seed: 9
materials:
  floor:
    type: lambertian
    albedo: [0.5, 0.5, 0.5]
  glass:
    type: dielectric
    ior: 1.5
  mirror:
    type: metal
    albedo: [0.9, 0.9, 0.9]
    fuzz: 3
spheres:
  - {center: [0, -100.5, -1], radius: 100, material: floor}
  - {center: [-1, 0, -1], radius: 0.5, material: glass}
  - {center: [0, 0, -1], radius: 0.5, material: glass}
  - {center: [1, 0, -1], radius: 0.5, material: mirror}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(glassRow))
	require.NoError(t, err)

	assert.Equal(t, "glass-row", s.Name)
	assert.Equal(t, 4, s.GetPrimitiveCount())
	assert.Equal(t, 3, s.Materials.Len())

	// Explicit zero depth survives defaulting
	assert.Equal(t, 0, s.SamplingConfig.MaxDepth)
	assert.Equal(t, int64(9), s.SamplingConfig.Seed)
	assert.Equal(t, 320, s.SamplingConfig.Width)

	// Camera inherits aspect ratio and default up
	assert.Equal(t, 2.0, s.CameraConfig.AspectRatio)
	assert.Equal(t, core.NewVec3(0, 1, 0), s.CameraConfig.Up)

	// Shared materials resolve to one handle
	assert.Equal(t, s.World.Spheres[1].Material, s.World.Spheres[2].Material)

	mirror, ok := s.Materials.Get(s.World.Spheres[3].Material)
	require.True(t, ok)
	assert.Equal(t, material.KindMetal, mirror.Kind)
	assert.Equal(t, 1.0, mirror.Fuzz, "fuzz is clamped to 1")
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte("camera: {look_from: [0,0,0], look_at: [0,0,-1]}\n"))
	require.NoError(t, err)

	assert.Equal(t, 50, s.SamplingConfig.MaxDepth)
	assert.Equal(t, 90.0, s.CameraConfig.VFov)
	assert.Zero(t, s.GetPrimitiveCount())
}

func TestParseErrors(t *testing.T) {
	camera := "camera: {look_from: [0,0,0], look_at: [0,0,-1]}\n"

	tests := []struct {
		name    string
		yaml    string
		unknown bool
	}{
		{"undefined material", camera + "spheres: [{center: [0,0,-1], radius: 0.5, material: chrome}]\n", true},
		{"unknown material type", camera + "materials: {x: {type: plasma}}\n", true},
		{"short vector", camera + "materials: {x: {type: metal, albedo: [1, 1]}}\n", false},
		{"missing camera", "spheres: []\n", false},
		{"negative albedo", camera + "materials: {x: {type: lambertian, albedo: [-1, 0, 0]}}\n", false},
		{"zero ior", camera + "materials: {x: {type: dielectric}}\n", false},
		{"bad sampling", camera + "sampling: {width: -3}\n", false},
		{"degenerate camera", "camera: {look_from: [1,1,1], look_at: [1,1,1]}\n", false},
		{"malformed yaml", "camera: [\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.unknown {
				assert.True(t, errors.Is(err, ErrUnknownMaterial), "got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glass-row.yaml")
	require.NoError(t, os.WriteFile(path, []byte(glassRow), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.GetPrimitiveCount())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
