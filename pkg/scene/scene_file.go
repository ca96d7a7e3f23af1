package scene

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// ErrUnknownMaterial is returned when a sphere names a material that is not defined
var ErrUnknownMaterial = errors.New("unknown material")

// File is the YAML description of a scene
type File struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Camera      CameraSpec              `yaml:"camera"`
	Sampling    SamplingSpec            `yaml:"sampling"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec            `yaml:"spheres"`
}

// CameraSpec mirrors renderer.CameraConfig; up defaults to +Y
type CameraSpec struct {
	LookFrom      []float64 `yaml:"look_from"`
	LookAt        []float64 `yaml:"look_at"`
	Up            []float64 `yaml:"up"`
	VFov          float64   `yaml:"vfov"`
	AspectRatio   float64   `yaml:"aspect_ratio"`
	Aperture      float64   `yaml:"aperture"`
	FocusDistance float64   `yaml:"focus_distance"`
}

// SamplingSpec holds optional sampling settings; zero values take defaults
type SamplingSpec struct {
	Width           int     `yaml:"width"`
	AspectRatio     float64 `yaml:"aspect_ratio"`
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	MaxDepth        *int    `yaml:"max_depth"`
	Seed            int64   `yaml:"seed"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string    `yaml:"type"` // lambertian, metal or dielectric
	Albedo          []float64 `yaml:"albedo"`
	Fuzz            float64   `yaml:"fuzz"`
	RefractiveIndex float64   `yaml:"ior"`
}

// SphereSpec places a sphere using a named material
type SphereSpec struct {
	Center   []float64 `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Material string    `yaml:"material"`
}

// LoadFile reads and builds the scene described by the YAML file at path
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene file %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene file %s", path)
	}
	return s, nil
}

// Parse builds a scene from YAML
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	return f.Build()
}

// Build converts the description into a validated scene
func (f *File) Build() (*Scene, error) {
	samplingConfig, err := f.Sampling.build()
	if err != nil {
		return nil, err
	}
	cameraConfig, err := f.Camera.build(samplingConfig.AspectRatio)
	if err != nil {
		return nil, err
	}

	name := f.Name
	if name == "" {
		name = "file"
	}
	s := newScene(name, cameraConfig, samplingConfig)

	// Sorted so handles do not depend on map order
	names := make([]string, 0, len(f.Materials))
	for materialName := range f.Materials {
		names = append(names, materialName)
	}
	sort.Strings(names)

	handles := make(map[string]material.Handle, len(names))
	for _, materialName := range names {
		m, err := f.Materials[materialName].build()
		if err != nil {
			return nil, errors.Wrapf(err, "material %q", materialName)
		}
		handles[materialName] = s.Materials.Add(m)
	}

	for i, spec := range f.Spheres {
		center, err := vec3(spec.Center, "center")
		if err != nil {
			return nil, errors.Wrapf(err, "sphere %d", i)
		}
		handle, ok := handles[spec.Material]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownMaterial, "sphere %d uses %q", i, spec.Material)
		}
		s.AddSphere(center, spec.Radius, handle)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (spec SamplingSpec) build() (SamplingConfig, error) {
	defaults := renderer.DefaultConfig()
	config := SamplingConfig{
		Width:           defaults.Width,
		AspectRatio:     defaults.AspectRatio,
		SamplesPerPixel: defaults.SamplesPerPixel,
		MaxDepth:        defaults.MaxDepth,
		Seed:            defaults.Seed,
	}

	if spec.Width != 0 {
		config.Width = spec.Width
	}
	if spec.AspectRatio != 0 {
		config.AspectRatio = spec.AspectRatio
	}
	if spec.SamplesPerPixel != 0 {
		config.SamplesPerPixel = spec.SamplesPerPixel
	}
	// max_depth 0 is meaningful, so only an absent key takes the default
	if spec.MaxDepth != nil {
		config.MaxDepth = *spec.MaxDepth
	}
	if spec.Seed != 0 {
		config.Seed = spec.Seed
	}

	if config.Width < 1 || config.AspectRatio <= 0 || config.SamplesPerPixel < 1 || config.MaxDepth < 0 {
		return config, errors.Errorf("invalid sampling settings %+v", config)
	}
	return config, nil
}

func (spec CameraSpec) build(defaultAspect float64) (renderer.CameraConfig, error) {
	lookFrom, err := vec3(spec.LookFrom, "camera look_from")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	lookAt, err := vec3(spec.LookAt, "camera look_at")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	up := core.NewVec3(0, 1, 0)
	if spec.Up != nil {
		if up, err = vec3(spec.Up, "camera up"); err != nil {
			return renderer.CameraConfig{}, err
		}
	}

	config := renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            up,
		VFov:          spec.VFov,
		AspectRatio:   spec.AspectRatio,
		Aperture:      spec.Aperture,
		FocusDistance: spec.FocusDistance,
	}
	if config.VFov == 0 {
		config.VFov = 90
	}
	if config.AspectRatio == 0 {
		config.AspectRatio = defaultAspect
	}
	return config, nil
}

func (spec MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(spec.Type) {
	case "lambertian", "diffuse":
		albedo, err := vec3(spec.Albedo, "albedo")
		if err != nil {
			return material.Material{}, err
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := vec3(spec.Albedo, "albedo")
		if err != nil {
			return material.Material{}, err
		}
		return material.NewMetal(albedo, spec.Fuzz), nil
	case "dielectric", "glass":
		return material.NewDielectric(spec.RefractiveIndex), nil
	default:
		return material.Material{}, errors.Wrapf(ErrUnknownMaterial, "type %q", spec.Type)
	}
}

func vec3(values []float64, field string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, errors.Errorf("%s needs 3 components, got %d", field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
