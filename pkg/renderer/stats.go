package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	AverageSamples  float64       // Average samples per pixel
	MeanLuminance   float64       // Mean of per-pixel average luminance
	LuminanceStdDev float64       // Spread of per-pixel average luminance
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall-clock render time
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum       core.Color // RGB running sum
	LuminanceAccum   float64    // Luminance running sum
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the luminance variance of the samples so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	return max(0, meanSq-mean*mean)
}

// computeFrameStats summarises a finished frame
func computeFrameStats(frame *Frame) RenderStats {
	stats := RenderStats{TotalPixels: len(frame.Pixels)}
	if stats.TotalPixels == 0 {
		return stats
	}

	luminance := make([]float64, len(frame.Pixels))
	for i := range frame.Pixels {
		pixel := &frame.Pixels[i]
		stats.TotalSamples += pixel.SampleCount
		luminance[i] = pixel.GetColor().Luminance()
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	if len(luminance) > 1 {
		stats.MeanLuminance, stats.LuminanceStdDev = stat.MeanStdDev(luminance, nil)
	} else {
		stats.MeanLuminance = stat.Mean(luminance, nil)
	}
	return stats
}
