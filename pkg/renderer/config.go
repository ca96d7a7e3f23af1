package renderer

import (
	"runtime"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid render configuration")

// Config contains rendering configuration
type Config struct {
	Width           int     // Image width in pixels
	AspectRatio     float64 // Width / height; height is truncated
	SamplesPerPixel int     // Number of jittered rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Seed            int64   // Run seed; pixel streams derive from it
	TileSize        int     // Edge length of a work tile
	NumWorkers      int     // Parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
		TileSize:        32,
		NumWorkers:      0,
	}
}

// Height returns the image height for width and aspect ratio, truncated to an integer
func Height(width int, aspectRatio float64) int {
	return int(float64(width) / aspectRatio)
}

// Height returns the derived image height
func (c Config) Height() int {
	return Height(c.Width, c.AspectRatio)
}

// Workers returns the effective number of workers
func (c Config) Workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// Validate reports settings that make a render impossible
func (c Config) Validate() error {
	switch {
	case c.Width < 1:
		return errors.Wrapf(ErrInvalidConfig, "width %d must be at least 1", c.Width)
	case !(c.AspectRatio > 0):
		return errors.Wrapf(ErrInvalidConfig, "aspect ratio %v must be positive", c.AspectRatio)
	case c.Height() < 1:
		return errors.Wrapf(ErrInvalidConfig, "width %d and aspect ratio %v give an empty image", c.Width, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return errors.Wrapf(ErrInvalidConfig, "samples per pixel %d must be at least 1", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "max depth %d must not be negative", c.MaxDepth)
	case c.TileSize < 0:
		return errors.Wrapf(ErrInvalidConfig, "tile size %d must not be negative", c.TileSize)
	}
	return nil
}
