package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	mat        material.Material
	e1, e2     core.Vec3 // Cached edges V1-V0 and V2-V0
	normal     core.Vec3 // Cached unit normal
	area       float64
	bbox       core.AABB
}

// NewTriangle creates a new triangle from three vertices. The outward normal
// follows the counter-clockwise winding V0, V1, V2.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	e1 := v1.Subtract(v0)
	e2 := v2.Subtract(v0)
	cross := e1.Cross(e2)

	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		mat:    mat,
		e1:     e1,
		e2:     e2,
		normal: cross.Normalize(),
		area:   0.5 * cross.Length(),
		bbox:   core.NewAABBFromPoints(v0, v1, v2),
	}
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) Intersection {
	const epsilon = 1e-12

	h := ray.Direction.Cross(t.e2)
	a := t.e1.Dot(h)

	// Ray lies in the plane of the triangle, or the triangle is degenerate
	if a > -epsilon && a < epsilon {
		return NoHit()
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return NoHit()
	}

	q := s.Cross(t.e1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return NoHit()
	}

	tHit := f * t.e2.Dot(q)
	if tHit <= 0 {
		return NoHit()
	}

	return newHit(ray, tHit, t.normal, t)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return t.area
}

// Sample returns a point uniformly distributed over the triangle
func (t *Triangle) Sample(sampler core.Sampler) SurfaceSample {
	b0, b1 := core.SampleUniformTriangle(sampler.Get2D())
	point := t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(1 - b0 - b1))
	return SurfaceSample{
		Point:    point,
		Normal:   t.normal,
		Emission: emissionOf(t.mat),
		PDF:      1.0 / t.area,
	}
}

// Material returns the triangle's material
func (t *Triangle) Material() material.Material {
	return t.mat
}

