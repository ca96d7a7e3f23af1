// Package output encodes rendered frames as PPM and PNG images and publishes them.
package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// ToRGB8 converts an accumulated color sum into gamma-2 corrected 8-bit channels.
// Each channel is int(256 * clamp(sqrt(sum/samples), 0, 0.999)); NaN maps to 0.
func ToRGB8(sum core.Color, samples int) (r, g, b uint8) {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	return channel(sum.X, scale), channel(sum.Y, scale), channel(sum.Z, scale)
}

func channel(c, scale float64) uint8 {
	v := math.Sqrt(scale * c)
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(0, math.Min(v, 0.999))
	return uint8(256 * v)
}

// WritePPM writes frame as a plain-text P3 image, top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return errors.Wrap(err, "write ppm header")
	}

	for i := range frame.Pixels {
		pixel := &frame.Pixels[i]
		r, g, b := ToRGB8(pixel.ColorAccum, pixel.SampleCount)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return errors.Wrapf(err, "write pixel %d", i)
		}
	}

	return errors.Wrap(bw.Flush(), "flush ppm")
}

// WritePPMFile creates path and writes frame into it
func WritePPMFile(path string, frame *renderer.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	if err := WritePPM(f, frame); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
