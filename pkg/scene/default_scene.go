package scene

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// NewThreeSphereScene creates the classic diffuse, glass and metal spheres on a large ground sphere
func NewThreeSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20.0,
		AspectRatio: 16.0 / 9.0,
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            1,
	}

	s := newScene("three-spheres", cameraConfig, samplingConfig)

	ground := s.Materials.Add(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.Materials.Add(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	glass := s.Materials.Add(material.NewDielectric(1.5))
	gold := s.Materials.Add(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)

	// Hollow glass sphere: the negative radius flips the inner surface normal
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glass)
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, glass)

	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, gold)

	return s
}
