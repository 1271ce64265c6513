package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Material describes how a surface scatters and emits light.
//
// Direction conventions shared by every method:
//   - wi is the direction of the ray arriving at the surface (pointing at it)
//   - wo is the direction leaving the surface
//   - n is the unit shading normal, flipped to face the arriving ray
type Material interface {
	// Sample draws an outgoing direction for the incoming direction wi
	Sample(wi, n core.Vec3, sampler core.Sampler) core.Vec3

	// PDF returns the density with which Sample would produce wo. Never negative.
	PDF(wi, wo, n core.Vec3) float64

	// Eval returns the BRDF value for the pair of directions. Never negative.
	Eval(wi, wo, n core.Vec3) core.Vec3

	// Emission returns the radiance the surface emits
	Emission() core.Vec3

	// HasEmission reports whether the emission is above core.Epsilon.
	// IsEmissive applies a caller-chosen threshold instead.
	HasEmission() bool
}

// IsEmissive reports whether m emits more than epsilon. A nil material
// never emits.
func IsEmissive(m Material, epsilon float64) bool {
	return m != nil && m.Emission().Length() > epsilon
}

// emits is the emission presence test shared by the materials in this package
func emits(emission core.Vec3) bool {
	return emission.Length() > core.Epsilon
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
