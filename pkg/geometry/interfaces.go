package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Primitive is anything that can be placed in a BVH: it is bounded,
// intersectable and can be sampled uniformly by area.
type Primitive interface {
	BoundingBox() core.AABB
	Area() float64
	Intersect(ray core.Ray) Intersection
	Sample(sampler core.Sampler) SurfaceSample
	Material() material.Material
}

// Intersection contains information about a ray-primitive intersection
type Intersection struct {
	Happened        bool
	Point           core.Vec3         // Point of intersection
	Normal          core.Vec3         // Unit normal facing the incoming ray
	GeometricNormal core.Vec3         // Unit outward normal of the surface
	FrontFace       bool              // Whether the ray hit the outward side
	Distance        float64           // Ray parameter of the hit, +Inf when nothing was hit
	Primitive       Primitive         // Primitive that was hit
	Material        material.Material // Material of the hit primitive
}

// NoHit returns the intersection record that reports nothing was hit
func NoHit() Intersection {
	return Intersection{Distance: math.Inf(1)}
}

// SetFaceNormal sets the normal vector and determines front/back face
func (i *Intersection) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	i.GeometricNormal = outwardNormal
	i.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if i.FrontFace {
		i.Normal = outwardNormal
	} else {
		i.Normal = outwardNormal.Negate()
	}
}

// SurfaceSample is a point drawn on a surface together with its density
type SurfaceSample struct {
	Point    core.Vec3
	Normal   core.Vec3 // Unit outward normal at Point
	Emission core.Vec3 // Radiance emitted at Point
	PDF      float64   // Density with respect to surface area
}

// newHit fills the common fields of a successful intersection
func newHit(ray core.Ray, t float64, outwardNormal core.Vec3, prim Primitive) Intersection {
	hit := Intersection{
		Happened:  true,
		Point:     ray.At(t),
		Distance:  t,
		Primitive: prim,
		Material:  prim.Material(),
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit
}

// emissionOf returns the emission of m, tolerating a nil material
func emissionOf(m material.Material) core.Vec3 {
	if m == nil {
		return core.Vec3{}
	}
	return m.Emission()
}
