package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// lightReflectance is the diffuse reflectance given to area lights
var lightReflectance = core.NewVec3(0.65, 0.65, 0.65)

// Diffuse is a Lambertian surface that may also emit light.
// Ks, SpecularExponent and IOR are carried with the material but do not
// take part in diffuse scattering.
type Diffuse struct {
	Kd               core.Vec3 // Diffuse reflectance
	Ks               core.Vec3 // Specular reflectance
	Emit             core.Vec3 // Emitted radiance
	SpecularExponent float64
	IOR              float64
}

// NewDiffuse creates a non-emissive diffuse material with reflectance kd
func NewDiffuse(kd core.Vec3) *Diffuse {
	return &Diffuse{Kd: kd, IOR: 1}
}

// NewEmissive creates a diffuse area light emitting the given radiance
func NewEmissive(emission core.Vec3) *Diffuse {
	return &Diffuse{Kd: lightReflectance, Emit: emission, IOR: 1}
}

// Sample draws a direction uniformly over the hemisphere around n
func (d *Diffuse) Sample(wi, n core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.SampleUniformHemisphere(n, sampler.Get2D())
}

// PDF is 1/(2π) for directions above the surface and zero below it
func (d *Diffuse) PDF(wi, wo, n core.Vec3) float64 {
	if wo.Dot(n) <= 0 {
		return 0
	}
	return 0.5 / math.Pi
}

// Eval returns Kd/π for directions above the surface and zero below it
func (d *Diffuse) Eval(wi, wo, n core.Vec3) core.Vec3 {
	if wo.Dot(n) <= 0 {
		return core.Vec3{}
	}
	return d.Kd.Multiply(1.0 / math.Pi)
}

// Emission returns the emitted radiance
func (d *Diffuse) Emission() core.Vec3 {
	return d.Emit
}

// HasEmission reports whether this material is a light
func (d *Diffuse) HasEmission() bool {
	return emits(d.Emit)
}
