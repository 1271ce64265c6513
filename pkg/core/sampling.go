package core

import (
	"math"
	"math/rand"
)

// Epsilon is the tolerance used for near-zero comparisons such as emission
// presence and vanishing probability densities
const Epsilon = 1e-4

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
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

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// OrthonormalBasis returns two unit vectors b and c such that (b, c, n) is a
// right-handed orthonormal frame. The helper axis is chosen from the larger
// of |n.X| and |n.Y| so the cross product never degenerates.
func OrthonormalBasis(n Vec3) (Vec3, Vec3) {
	var c Vec3
	if math.Abs(n.X) > math.Abs(n.Y) {
		invLen := 1.0 / math.Sqrt(n.X*n.X+n.Z*n.Z)
		c = NewVec3(n.Z*invLen, 0, -n.X*invLen)
	} else {
		invLen := 1.0 / math.Sqrt(n.Y*n.Y+n.Z*n.Z)
		c = NewVec3(0, n.Z*invLen, -n.Y*invLen)
	}
	b := c.Cross(n)
	return b, c
}

// ToWorld transforms a direction given in the local frame around n
// (z along n) into world space
func ToWorld(local, n Vec3) Vec3 {
	b, c := OrthonormalBasis(n)
	return b.Multiply(local.X).Add(c.Multiply(local.Y)).Add(n.Multiply(local.Z))
}

// SampleUniformHemisphere generates a uniformly distributed direction in the
// hemisphere around normal. The density is 1/(2π) per steradian.
func SampleUniformHemisphere(normal Vec3, sample Vec2) Vec3 {
	z := math.Abs(1.0 - 2.0*sample.X)
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	local := NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
	return ToWorld(local, normal)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SampleUniformTriangle maps a 2D sample to barycentric coordinates (b0, b1)
// distributed uniformly over a triangle's area
func SampleUniformTriangle(sample Vec2) (float64, float64) {
	su := math.Sqrt(sample.X)
	return 1.0 - su, sample.Y * su
}
