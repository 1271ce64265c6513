package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	mat    material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		mat:    mat,
	}
}

// Intersect tests if a ray intersects with the sphere and returns the
// nearest hit in front of the ray origin
func (s *Sphere) Intersect(ray core.Ray) Intersection {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return NoHit()
	}

	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= 0 {
		root = (-halfB + sqrtD) / a
		if root <= 0 {
			return NoHit()
		}
	}

	outwardNormal := ray.At(root).Subtract(s.Center).Multiply(1.0 / s.Radius)
	return newHit(ray, root, outwardNormal, s)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Area returns 4πr²
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Sample returns a uniformly distributed point on the sphere surface
func (s *Sphere) Sample(sampler core.Sampler) SurfaceSample {
	dir := core.SampleOnUnitSphere(sampler.Get2D())
	return SurfaceSample{
		Point:    s.Center.Add(dir.Multiply(s.Radius)),
		Normal:   dir,
		Emission: emissionOf(s.mat),
		PDF:      1.0 / s.Area(),
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.mat
}
