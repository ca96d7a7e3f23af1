package renderer

import (
	"image"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/geometry"
	"github.com/GIP2000/Computer-Graphics/pkg/integrator"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), y measured from the top
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders pixels of a frame using an integrator.
// It only reads its fields, so one instance serves all workers.
type TileRenderer struct {
	world      geometry.Hittable
	materials  *material.Table
	camera     *Camera
	integrator integrator.Integrator
	config     Config
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(world geometry.Hittable, materials *material.Table, camera *Camera, integratorInst integrator.Integrator, config Config) *TileRenderer {
	return &TileRenderer{
		world:      world,
		materials:  materials,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderTileBounds renders every pixel within bounds into frame.
// Tiles never overlap, so concurrent calls write disjoint pixels.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, frame *Frame) {
	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for col := bounds.Min.X; col < bounds.Max.X; col++ {
			*frame.At(col, row) = tr.RenderPixel(col, row, frame.Width, frame.Height)
		}
	}
}

// RenderPixel integrates one pixel. Row 0 is the top of the image; the
// viewport coordinate v grows upward.
func (tr *TileRenderer) RenderPixel(col, row, width, height int) PixelStats {
	sampler := core.NewPixelSampler(tr.config.Seed, row*width+col)
	fromBottom := height - 1 - row

	var ps PixelStats
	for sample := 0; sample < tr.config.SamplesPerPixel; sample++ {
		// Jitter within the pixel footprint
		s := (float64(col) + sampler.Get1D()) / float64(width)
		t := (float64(fromBottom) + sampler.Get1D()) / float64(height)

		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, tr.materials, sampler))
	}
	return ps
}
