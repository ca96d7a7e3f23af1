package output

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// Image converts frame to an opaque NRGBA image using the same tone mapping as WritePPM
func Image(frame *renderer.Frame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			pixel := frame.At(col, row)
			r, g, b := ToRGB8(pixel.ColorAccum, pixel.SampleCount)
			img.SetNRGBA(col, row, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// SavePNG writes frame to path; the format follows the file extension
func SavePNG(path string, frame *renderer.Frame) error {
	return errors.Wrapf(imaging.Save(Image(frame), path), "save %s", path)
}

// Thumbnail scales frame so its longer edge is maxDim pixels, keeping the aspect ratio.
// Frames already within maxDim are returned unscaled.
func Thumbnail(frame *renderer.Frame, maxDim int) image.Image {
	img := Image(frame)
	if maxDim <= 0 || (frame.Width <= maxDim && frame.Height <= maxDim) {
		return img
	}

	if frame.Width >= frame.Height {
		return resize.Resize(uint(maxDim), 0, img, resize.Bilinear)
	}
	return resize.Resize(0, uint(maxDim), img, resize.Bilinear)
}

// SaveThumbnail writes a thumbnail of frame to path
func SaveThumbnail(path string, frame *renderer.Frame, maxDim int) error {
	return errors.Wrapf(imaging.Save(Thumbnail(frame, maxDim), path), "save thumbnail %s", path)
}
