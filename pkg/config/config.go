// Package config loads render settings from defaults, a YAML file, RAYTRACER_* environment variables and flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/GIP2000/Computer-Graphics/pkg/output"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
	"github.com/GIP2000/Computer-Graphics/pkg/scene"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "RAYTRACER"

// Config holds everything the render command needs
type Config struct {
	Scene     string `mapstructure:"scene"`
	SceneFile string `mapstructure:"scene_file"`
	Output    string `mapstructure:"output"`
	PNG       string `mapstructure:"png"`
	Thumbnail string `mapstructure:"thumbnail"`
	ThumbSize int    `mapstructure:"thumb_size"`

	// Zero values fall back to the scene's own sampling settings
	Width           int     `mapstructure:"width"`
	AspectRatio     float64 `mapstructure:"aspect_ratio"`
	SamplesPerPixel int     `mapstructure:"samples"`
	MaxDepth        int     `mapstructure:"max_depth"`
	Seed            int64   `mapstructure:"seed"`

	Workers  int    `mapstructure:"workers"`
	TileSize int    `mapstructure:"tile_size"`
	LogLevel string `mapstructure:"log_level"`
	Pretty   bool   `mapstructure:"pretty"`

	S3 S3Config `mapstructure:"s3"`
}

// S3Config selects where finished images are published
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scene", "random")
	v.SetDefault("output", "image.ppm")
	v.SetDefault("thumb_size", 256)
	v.SetDefault("max_depth", -1) // negative means "use the scene's depth"
	v.SetDefault("tile_size", 32)
	v.SetDefault("log_level", "info")
	v.SetDefault("pretty", true)
	v.SetDefault("s3.region", "us-east-1")
}

// Load reads configuration through v. When configFile is non-empty it is
// read as YAML; environment variables override it.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about
	for _, key := range []string{"scene_file", "png", "thumbnail", "width", "aspect_ratio", "samples", "seed", "workers",
		"s3.bucket", "s3.endpoint", "s3.prefix", "s3.access_key", "s3.secret_key"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.Wrapf(err, "bind env %s", key)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "error reading config file %s", configFile)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, errors.Wrap(err, "error unmarshaling config")
	}

	if err := config.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return config, nil
}

// Validate checks settings that can be rejected before a scene is built
func (c Config) Validate() error {
	switch {
	case c.Scene == "" && c.SceneFile == "":
		return errors.New("either scene or scene_file must be set")
	case c.Output == "":
		return errors.New("output path cannot be empty")
	case c.Width < 0, c.SamplesPerPixel < 0, c.AspectRatio < 0:
		return errors.New("width, aspect ratio and samples must not be negative")
	case c.TileSize < 0:
		return errors.New("tile size must not be negative")
	}
	return nil
}

// LoadScene builds the configured scene. A scene file takes precedence
// over a builtin name.
func (c Config) LoadScene() (*scene.Scene, error) {
	if c.SceneFile != "" {
		return scene.LoadFile(c.SceneFile)
	}
	return scene.ByName(c.Scene, c.Seed)
}

// RenderConfig overlays the non-zero settings onto the scene's sampling config
func (c Config) RenderConfig(s *scene.Scene) renderer.Config {
	config := s.RenderConfig()
	if c.Width > 0 {
		config.Width = c.Width
	}
	if c.AspectRatio > 0 {
		config.AspectRatio = c.AspectRatio
	}
	if c.SamplesPerPixel > 0 {
		config.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth >= 0 {
		config.MaxDepth = c.MaxDepth
	}
	if c.Seed != 0 {
		config.Seed = c.Seed
	}
	config.NumWorkers = c.Workers
	config.TileSize = c.TileSize
	return config
}

// CameraConfig returns the scene camera with its aspect ratio matched to the image
func (c Config) CameraConfig(s *scene.Scene, render renderer.Config) renderer.CameraConfig {
	camera := s.CameraConfig
	camera.AspectRatio = render.AspectRatio
	return camera
}

// S3Output converts the S3 section for the output package
func (c Config) S3Output() output.S3Config {
	return output.S3Config{
		Bucket:    c.S3.Bucket,
		Region:    c.S3.Region,
		Endpoint:  c.S3.Endpoint,
		Prefix:    c.S3.Prefix,
		AccessKey: c.S3.AccessKey,
		SecretKey: c.S3.SecretKey,
	}
}
