package renderer

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/geometry"
	"github.com/GIP2000/Computer-Graphics/pkg/integrator"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

const defaultTileSize = 32

// ProgressFunc is called after each finished tile
type ProgressFunc func(tilesDone, tilesTotal int)

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Hittable
	materials  *material.Table
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	progress   ProgressFunc
}

// NewRaytracer creates a new raytracer over an immutable world.
// A nil logger discards log output.
func NewRaytracer(world geometry.Hittable, materials *material.Table, camera *Camera, config Config, logger core.Logger) (*Raytracer, error) {
	if world == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "world is nil")
	}
	if materials == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "material table is nil")
	}
	if camera == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "camera is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := materials.Validate(); err != nil {
		return nil, errors.Wrap(err, "material table")
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		world:      world,
		materials:  materials,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}, nil
}

// SetProgressFunc registers a callback invoked as tiles complete
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.progress = fn
}

// SetIntegrator replaces the default path tracing integrator
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces every pixel of the image and returns the ordered frame.
// Pixels use independent sample streams, so the result does not depend on
// the worker count or on scheduling.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	width := rt.config.Width
	height := rt.config.Height()

	tileSize := rt.config.TileSize
	if tileSize == 0 {
		tileSize = defaultTileSize
	}

	frame := NewFrame(width, height, rt.config.SamplesPerPixel)
	tiles := NewTileGrid(width, height, tileSize)
	numWorkers := min(rt.config.Workers(), len(tiles))

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d tiles on %d workers\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(tiles), numWorkers)

	tileRenderer := NewTileRenderer(rt.world, rt.materials, rt.camera, rt.integrator, rt.config)
	pool := NewWorkerPool(ctx, tileRenderer, numWorkers, len(tiles))
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Frame: frame})
	}

	stopErr := make(chan error, 1)
	go func() {
		stopErr <- pool.Stop()
	}()

	done := 0
	for range pool.Results() {
		done++
		if rt.progress != nil {
			rt.progress(done, len(tiles))
		}
	}

	if err := <-stopErr; err != nil {
		return nil, RenderStats{}, errors.Wrap(err, "render cancelled")
	}

	stats := computeFrameStats(frame)
	stats.Tiles = len(tiles)
	stats.Workers = numWorkers
	stats.Duration = time.Since(start)

	rt.logger.Printf("Render complete in %v: %d samples, mean luminance %.4f\n",
		stats.Duration, stats.TotalSamples, stats.MeanLuminance)

	return frame, stats, nil
}
