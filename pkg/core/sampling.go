package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; each worker owns its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// NewPixelSampler creates a sampler whose stream depends only on the run seed and pixel index
func NewPixelSampler(seed int64, pixelIndex int) *RandomSampler {
	return NewSeededSampler(PixelSeed(seed, pixelIndex))
}

// PixelSeed mixes a run seed and a pixel index into a well-distributed 63-bit seed.
// Uses the splitmix64 finalizer so neighbouring pixels get unrelated streams.
func PixelSeed(seed int64, pixelIndex int) int64 {
	z := uint64(seed) + uint64(pixelIndex+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z & (1<<63 - 1))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomFloat returns a uniform value in [lo, hi)
func RandomFloat(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomVec3 returns a vector whose components are drawn independently from [lo, hi)
func RandomVec3(sampler Sampler, lo, hi float64) Vec3 {
	u := sampler.Get3D()
	return NewVec3(lo+(hi-lo)*u.X, lo+(hi-lo)*u.Y, lo+(hi-lo)*u.Z)
}

// RandomInUnitSphere rejection-samples a point strictly inside the unit ball
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(sampler, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// The origin itself has no direction; draw again
		if p.LengthSquared() > 0 {
			return p.Normalize()
		}
	}
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		x, y := sampler.Get2D()
		p := NewVec3(2*x-1, 2*y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
