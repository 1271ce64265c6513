package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Unit normal
	Radius float64
	Right  core.Vec3 // Unit vector in the disc plane
	Up     core.Vec3 // Unit vector in the disc plane, perpendicular to Right
	mat    material.Material
	bbox   core.AABB
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat material.Material) *Disc {
	n := normal.Normalize()
	right, up := core.OrthonormalBasis(n)

	// Exact bounds: along axis i the disc spans r·sqrt(1 - n_i²)
	extent := core.NewVec3(
		radius*math.Sqrt(math.Max(0, 1-n.X*n.X)),
		radius*math.Sqrt(math.Max(0, 1-n.Y*n.Y)),
		radius*math.Sqrt(math.Max(0, 1-n.Z*n.Z)),
	)

	return &Disc{
		Center: center,
		Normal: n,
		Radius: radius,
		Right:  right,
		Up:     up,
		mat:    mat,
		bbox:   core.NewAABB(center.Subtract(extent), center.Add(extent)),
	}
}

// Intersect tests the ray against the disc plane and radius
func (d *Disc) Intersect(ray core.Ray) Intersection {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return NoHit() // Ray is parallel to disc
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= 0 {
		return NoHit()
	}

	if ray.At(t).Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return NoHit() // Outside disc
	}

	return newHit(ray, t, d.Normal, d)
}

// BoundingBox returns the tight box around the disc
func (d *Disc) BoundingBox() core.AABB {
	return d.bbox
}

// Area returns πr²
func (d *Disc) Area() float64 {
	return math.Pi * d.Radius * d.Radius
}

// Sample returns a point uniformly distributed on the disc surface
func (d *Disc) Sample(sampler core.Sampler) SurfaceSample {
	sample := sampler.Get2D()
	r := math.Sqrt(sample.X) * d.Radius
	theta := 2.0 * math.Pi * sample.Y

	return SurfaceSample{
		Point:    d.Center.Add(d.Right.Multiply(r * math.Cos(theta))).Add(d.Up.Multiply(r * math.Sin(theta))),
		Normal:   d.Normal,
		Emission: emissionOf(d.mat),
		PDF:      1.0 / d.Area(),
	}
}

// Material returns the disc's material
func (d *Disc) Material() material.Material {
	return d.mat
}
