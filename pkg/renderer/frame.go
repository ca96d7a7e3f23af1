package renderer

// Frame is the index-addressable result of a render.
// Row 0 is the top of the image; pixels are stored row-major.
type Frame struct {
	Width   int
	Height  int
	Samples int // Samples per pixel the frame was rendered with
	Pixels  []PixelStats
}

// NewFrame allocates an empty frame
func NewFrame(width, height, samples int) *Frame {
	return &Frame{
		Width:   width,
		Height:  height,
		Samples: samples,
		Pixels:  make([]PixelStats, width*height),
	}
}

// Index returns the raster index of (col, row)
func (f *Frame) Index(col, row int) int {
	return row*f.Width + col
}

// At returns the pixel at (col, row)
func (f *Frame) At(col, row int) *PixelStats {
	return &f.Pixels[f.Index(col, row)]
}
