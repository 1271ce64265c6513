package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Unit normal (U × V)
	D      float64   // Plane equation constant: n·p = D
	W      core.Vec3 // Cached n / (n·(U × V)) for planar coordinates
	mat    material.Material
	area   float64
	bbox   core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	var w core.Vec3
	if denom := normal.Dot(cross); denom != 0 {
		w = normal.Multiply(1.0 / denom)
	}

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      w,
		mat:    mat,
		area:   cross.Length(),
		bbox:   core.NewAABBFromPoints(corner, corner.Add(u), corner.Add(v), corner.Add(u).Add(v)),
	}
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray) Intersection {
	denominator := ray.Direction.Dot(q.Normal)

	// Parallel to the plane, or a degenerate quad with a zero normal
	if math.Abs(denominator) < 1e-12 {
		return NoHit()
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= 0 {
		return NoHit()
	}

	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return NoHit()
	}

	return newHit(ray, t, q.Normal, q)
}

// BoundingBox returns the bounds of the four corners. Axis-aligned quads
// produce a box of zero thickness, which the slab test accepts.
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

// Area returns |U × V|
func (q *Quad) Area() float64 {
	return q.area
}

// Sample returns a point uniformly distributed over the quad
func (q *Quad) Sample(sampler core.Sampler) SurfaceSample {
	st := sampler.Get2D()
	return SurfaceSample{
		Point:    q.Corner.Add(q.U.Multiply(st.X)).Add(q.V.Multiply(st.Y)),
		Normal:   q.Normal,
		Emission: emissionOf(q.mat),
		PDF:      1.0 / q.area,
	}
}

// Material returns the quad's material
func (q *Quad) Material() material.Material {
	return q.mat
}
