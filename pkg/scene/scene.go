package scene

import (
	"math"

	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/geometry"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is built once and must not be modified while a render reads it.
type Scene struct {
	Name           string
	World          *geometry.HittableList // Objects in the scene
	Materials      *material.Table        // Materials referenced by the objects
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the render settings a scene recommends
type SamplingConfig struct {
	Width           int     // Image width
	AspectRatio     float64 // Width / height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Seed            int64   // Run seed for pixel sampling
}

func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewHittableList(),
		Materials:      material.NewTable(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// AddSphere adds a sphere using material handle m
func (s *Scene) AddSphere(center core.Point3, radius float64, m material.Handle) {
	s.World.Add(geometry.NewSphere(center, radius, m))
}

// Camera builds the scene camera
func (s *Scene) Camera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.CameraConfig)
}

// RenderConfig returns the scene's sampling settings as a render configuration
func (s *Scene) RenderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = s.SamplingConfig.Width
	config.AspectRatio = s.SamplingConfig.AspectRatio
	config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	config.MaxDepth = s.SamplingConfig.MaxDepth
	config.Seed = s.SamplingConfig.Seed
	return config
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Validate checks that every object is well formed and refers to a valid material
func (s *Scene) Validate() error {
	if s.World == nil || s.Materials == nil {
		return errors.Errorf("scene %q is missing its world or materials", s.Name)
	}
	if err := s.Materials.Validate(); err != nil {
		return errors.Wrapf(err, "scene %q", s.Name)
	}
	for i, sphere := range s.World.Spheres {
		if !sphere.Center.IsFinite() {
			return errors.Errorf("scene %q: sphere %d center %v is not finite", s.Name, i, sphere.Center)
		}
		if math.IsNaN(sphere.Radius) || math.IsInf(sphere.Radius, 0) {
			return errors.Errorf("scene %q: sphere %d radius %v is not finite", s.Name, i, sphere.Radius)
		}
		if _, ok := s.Materials.Get(sphere.Material); !ok {
			return errors.Wrapf(ErrUnknownMaterial, "scene %q: sphere %d uses material %d", s.Name, i, sphere.Material)
		}
	}
	return errors.Wrapf(s.CameraConfig.Validate(), "scene %q camera", s.Name)
}

// NewEmptyScene creates a scene with no objects; every ray sees the sky
func NewEmptyScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}
	samplingConfig := SamplingConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		Seed:            1,
	}
	return newScene("empty", cameraConfig, samplingConfig)
}
