package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// mirrorTolerance is how far wo may stray from the reflection direction and
// still count as the reflection
const mirrorTolerance = 1e-3

// Mirror is a perfect specular reflector
type Mirror struct {
	Ks core.Vec3 // Reflectance
}

// NewMirror creates a mirror with reflectance ks
func NewMirror(ks core.Vec3) *Mirror {
	return &Mirror{Ks: ks}
}

// Sample returns the mirror reflection of wi about n
func (m *Mirror) Sample(wi, n core.Vec3, sampler core.Sampler) core.Vec3 {
	return reflect(wi.Normalize(), n)
}

// PDF is 1 along the reflection direction and zero elsewhere
func (m *Mirror) PDF(wi, wo, n core.Vec3) float64 {
	if !m.isReflection(wi, wo, n) {
		return 0
	}
	return 1
}

// Eval returns Ks/cosθ along the reflection direction so that
// Eval·cosθ/PDF equals Ks
func (m *Mirror) Eval(wi, wo, n core.Vec3) core.Vec3 {
	if !m.isReflection(wi, wo, n) {
		return core.Vec3{}
	}
	cosTheta := wo.Normalize().Dot(n)
	if cosTheta <= 0 {
		return core.Vec3{}
	}
	return m.Ks.Multiply(1.0 / cosTheta)
}

// Emission is always zero for mirrors
func (m *Mirror) Emission() core.Vec3 {
	return core.Vec3{}
}

// HasEmission is always false for mirrors
func (m *Mirror) HasEmission() bool {
	return false
}

func (m *Mirror) isReflection(wi, wo, n core.Vec3) bool {
	reflected := reflect(wi.Normalize(), n)
	return wo.Normalize().Subtract(reflected).Length() < mirrorTolerance
}
