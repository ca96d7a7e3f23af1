package core

import (
	"math"
	"testing"
)

func TestRandomInUnitSphere_InsideBall(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 10000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit ball: %v (|p|²=%f)", i, p, p.LengthSquared())
		}
	}
}

func TestRandomUnitVector_UnitLength(t *testing.T) {
	sampler := NewSeededSampler(7)
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := RandomUnitVector(sampler)
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d not unit length: %f", i, p.Length())
		}
		mean = mean.Add(p)
	}

	// Uniform directions average out to the origin
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Unit vectors look biased, mean = %v", mean)
	}
}

func TestRandomInUnitDisk_PlanarAndInside(t *testing.T) {
	sampler := NewSeededSampler(123)
	for i := 0; i < 10000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample %d has non-zero z: %v", i, p)
		}
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Disk sample %d outside unit disk: %v", i, p)
		}
	}
}

func TestRandomVec3_Range(t *testing.T) {
	sampler := NewSeededSampler(1)
	for i := 0; i < 1000; i++ {
		v := RandomVec3(sampler, 0.5, 1.0)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0.5 || c >= 1.0 {
				t.Fatalf("Component %f outside [0.5, 1.0)", c)
			}
		}
	}
}

func TestPixelSampler_Reproducible(t *testing.T) {
	a := NewPixelSampler(99, 17)
	b := NewPixelSampler(99, 17)
	for i := 0; i < 16; i++ {
		if x, y := a.Get1D(), b.Get1D(); x != y {
			t.Fatalf("Draw %d differs for identical seeds: %f vs %f", i, x, y)
		}
	}
}

func TestPixelSeed_Distinct(t *testing.T) {
	seen := make(map[int64]int)
	for idx := 0; idx < 4096; idx++ {
		s := PixelSeed(42, idx)
		if s < 0 {
			t.Fatalf("Seed for pixel %d is negative: %d", idx, s)
		}
		if prev, ok := seen[s]; ok {
			t.Fatalf("Pixels %d and %d share seed %d", prev, idx, s)
		}
		seen[s] = idx
	}

	if PixelSeed(1, 0) == PixelSeed(2, 0) {
		t.Error("Different run seeds should give different pixel seeds")
	}
}
