package scene

import (
	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

const (
	randomGridExtent = 11
	smallRadius      = 0.2
	bigSphereClear   = 0.9
)

// NewRandomScene creates the field of small random spheres around three large ones.
// The layout depends only on seed.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := SamplingConfig{
		Width:           1200,
		AspectRatio:     3.0 / 2.0,
		SamplesPerPixel: 500,
		MaxDepth:        50,
		Seed:            seed,
	}

	s := newScene("random", cameraConfig, samplingConfig)
	sampler := core.NewSeededSampler(seed)

	ground := s.Materials.Add(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	// Every small glass sphere shares one material
	glass := s.Materials.Add(material.NewDielectric(1.5))
	clearOf := core.NewVec3(4, smallRadius, 0)

	for a := -randomGridExtent; a < randomGridExtent; a++ {
		for b := -randomGridExtent; b < randomGridExtent; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearOf).Length() <= bigSphereClear {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1))
				s.AddSphere(center, smallRadius, s.Materials.Add(material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0, 0.5)
				fuzz := core.RandomFloat(sampler, 0, 0.5)
				s.AddSphere(center, smallRadius, s.Materials.Add(material.NewMetal(albedo, fuzz)))
			default:
				s.AddSphere(center, smallRadius, glass)
			}
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, s.Materials.Add(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, s.Materials.Add(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s
}
