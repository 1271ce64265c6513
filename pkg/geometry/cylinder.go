package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Cylinder represents a finite cylinder shape (open-ended, no caps)
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64

	// Cached derived values
	axis   core.Vec3 // Unit vector from base to top
	height float64   // Distance between base and top
	mat    material.Material
	bbox   core.AABB
}

// NewCylinder creates a new cylinder
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64, mat material.Material) *Cylinder {
	axisVector := topCenter.Subtract(baseCenter)
	axis := axisVector.Normalize()

	// The end circles span r·sqrt(1 - a_i²) along each axis
	extent := core.NewVec3(
		radius*math.Sqrt(math.Max(0, 1-axis.X*axis.X)),
		radius*math.Sqrt(math.Max(0, 1-axis.Y*axis.Y)),
		radius*math.Sqrt(math.Max(0, 1-axis.Z*axis.Z)),
	)
	bbox := core.NewAABB(baseCenter.Subtract(extent), baseCenter.Add(extent)).
		Union(core.NewAABB(topCenter.Subtract(extent), topCenter.Add(extent)))

	return &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     radius,
		axis:       axis,
		height:     axisVector.Length(),
		mat:        mat,
		bbox:       bbox,
	}
}

// Intersect tests if a ray intersects with the cylinder wall
func (c *Cylinder) Intersect(ray core.Ray) Intersection {
	// Vector from base center to ray origin
	delta := ray.Origin.Subtract(c.BaseCenter)

	dv := ray.Direction.Dot(c.axis)
	deltaV := delta.Dot(c.axis)

	// Quadratic in t for the infinite cylinder: a·t² + b·t + cc = 0
	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Parallel to the axis: the ray never crosses the wall
	if math.Abs(a) < 1e-12 {
		return NoHit()
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return NoHit()
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearer root first; it may be cut away by the ends while the far one is not
	for _, t := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
		if t <= 0 {
			continue
		}
		point := ray.At(t)
		h := point.Subtract(c.BaseCenter).Dot(c.axis)
		if h < 0 || h > c.height {
			continue
		}

		// Normal points radially outward from the axis
		axisPoint := c.BaseCenter.Add(c.axis.Multiply(h))
		return newHit(ray, t, point.Subtract(axisPoint).Normalize(), c)
	}
	return NoHit()
}

// BoundingBox returns the box around both end circles
func (c *Cylinder) BoundingBox() core.AABB {
	return c.bbox
}

// Area returns the wall area 2πrh
func (c *Cylinder) Area() float64 {
	return 2 * math.Pi * c.Radius * c.height
}

// Sample returns a point uniformly distributed on the cylinder wall
func (c *Cylinder) Sample(sampler core.Sampler) SurfaceSample {
	sample := sampler.Get2D()
	b, d := core.OrthonormalBasis(c.axis)
	phi := 2 * math.Pi * sample.Y
	radial := b.Multiply(math.Cos(phi)).Add(d.Multiply(math.Sin(phi)))

	return SurfaceSample{
		Point:    c.BaseCenter.Add(c.axis.Multiply(sample.X * c.height)).Add(radial.Multiply(c.Radius)),
		Normal:   radial,
		Emission: emissionOf(c.mat),
		PDF:      1.0 / c.Area(),
	}
}

// Material returns the cylinder's material
func (c *Cylinder) Material() material.Material {
	return c.mat
}
