package renderer

import (
	"runtime"
	"testing"

	"github.com/pkg/errors"
)

func TestConfigHeight(t *testing.T) {
	tests := []struct {
		width    int
		aspect   float64
		expected int
	}{
		{400, 16.0 / 9.0, 225},
		{1200, 3.0 / 2.0, 800},
		{2, 2.0, 1},
		{10, 3.0, 3}, // truncated
	}

	for _, tt := range tests {
		if got := Height(tt.width, tt.aspect); got != tt.expected {
			t.Errorf("Height(%d, %v) = %d, want %d", tt.width, tt.aspect, got, tt.expected)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero aspect", func(c *Config) { c.AspectRatio = 0 }},
		{"empty height", func(c *Config) { c.Width = 1; c.AspectRatio = 2 }},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"negative tile size", func(c *Config) { c.TileSize = -4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigZeroDepthIsValid(t *testing.T) {
	config := DefaultConfig()
	config.MaxDepth = 0
	if err := config.Validate(); err != nil {
		t.Errorf("Max depth 0 should be valid: %v", err)
	}
}

func TestConfigWorkers(t *testing.T) {
	config := DefaultConfig()
	if got := config.Workers(); got != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), got)
	}
	config.NumWorkers = 3
	if got := config.Workers(); got != 3 {
		t.Errorf("Expected 3 workers, got %d", got)
	}
}
