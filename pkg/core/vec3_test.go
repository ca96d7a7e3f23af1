package core

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"Zero vector", NewVec3(0, 0, 0), true},
		{"Tiny components", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"One component at epsilon", NewVec3(1e-8, 0, 0), false},
		{"Negative large component", NewVec3(0, 0, -0.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, want %t", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := NewVec3(0, 0, 0).Normalize(); !got.Equals(NewVec3(0, 0, 0)) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", got)
	}
	got := NewVec3(3, 0, 4).Normalize()
	if math.Abs(got.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", got.Length())
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"Head-on", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"Parallel to surface", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflect(tt.v, tt.n)
			if !vecClose(got, tt.expected, 1e-12) {
				t.Errorf("Reflect(%v, %v) = %v, want %v", tt.v, tt.n, got, tt.expected)
			}
		})
	}
}

func TestRefract_IdentityRatio(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := []Vec3{
		NewVec3(0, -1, 0),
		NewVec3(1, -1, 0).Normalize(),
		NewVec3(0.3, -0.9, 0.2).Normalize(),
	}

	for _, uv := range incoming {
		got := Refract(uv, normal, 1.0)
		if !vecClose(got, uv, 1e-9) {
			t.Errorf("Refract with ratio 1 should not bend %v, got %v", uv, got)
		}
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	uv := NewVec3(math.Sin(math.Pi/6), -math.Cos(math.Pi/6), 0) // 30° incidence
	eta := 1.0 / 1.5

	got := Refract(uv, normal, eta)
	if math.Abs(got.Length()-1) > 1e-9 {
		t.Errorf("Refracted direction should stay unit length, got %f", got.Length())
	}

	sinIn := math.Sin(math.Pi / 6)
	sinOut := got.X
	if math.Abs(sinOut-eta*sinIn) > 1e-9 {
		t.Errorf("Expected sin(out) = %f, got %f", eta*sinIn, sinOut)
	}
	if got.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(2, 0, -1))
	tests := []struct {
		param    float64
		expected Vec3
	}{
		{0, NewVec3(1, 2, 3)},
		{1, NewVec3(3, 2, 2)},
		{-0.5, NewVec3(0, 2, 3.5)},
	}

	for _, tt := range tests {
		if got := ray.At(tt.param); !vecClose(got, tt.expected, 1e-12) {
			t.Errorf("At(%f) = %v, want %v", tt.param, got, tt.expected)
		}
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}
