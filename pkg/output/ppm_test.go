package output

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

func TestToRGB8(t *testing.T) {
	tests := []struct {
		name    string
		sum     core.Color
		samples int
		r, g, b uint8
	}{
		{"white clamps to 255", core.NewVec3(1, 1, 1), 1, 255, 255, 255},
		{"black", core.NewVec3(0, 0, 0), 1, 0, 0, 0},
		{"averaged then gamma corrected", core.NewVec3(1, 1, 1), 4, 128, 128, 128},
		{"over-bright clamps", core.NewVec3(10, 2, 1.5), 1, 255, 255, 255},
		{"NaN maps to zero", core.NewVec3(math.NaN(), 1, 0), 1, 0, 255, 0},
		{"negative maps to zero", core.NewVec3(-1, 0.25, 0), 1, 0, 128, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ToRGB8(tt.sum, tt.samples)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}

func testFrame() *renderer.Frame {
	frame := renderer.NewFrame(2, 1, 1)
	frame.At(0, 0).AddSample(core.NewVec3(1, 1, 1))
	frame.At(1, 0).AddSample(core.NewVec3(0, 0.25, 0))
	return frame
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, testFrame()))

	assert.Equal(t, "P3\n2 1\n255\n255 255 255\n0 128 0\n", buf.String())
}

func TestWritePPMFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	require.NoError(t, WritePPMFile(path, testFrame()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "P3\n2 1\n255\n255 255 255\n0 128 0\n", string(data))
}

func TestWritePPMFile_UncreatablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.ppm")
	assert.Error(t, WritePPMFile(path, testFrame()))
}
