package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Box is a rectangular box made of six quads, optionally rotated about its
// vertical axis. It behaves as a single primitive.
type Box struct {
	Center    core.Vec3 // Center point of the box
	HalfSize  core.Vec3 // Half-extents along each local axis
	RotationY float64   // Rotation around the Y axis in radians
	mat       material.Material
	faces     [6]*Quad
	area      float64
	bbox      core.AABB
}

// NewBox creates a box with the given center, half-extents, Y rotation and material
func NewBox(center, halfSize core.Vec3, rotationY float64, mat material.Material) *Box {
	box := &Box{
		Center:    center,
		HalfSize:  halfSize,
		RotationY: rotationY,
		mat:       mat,
	}
	box.generateFaces()
	return box
}

// NewBoxFromCorners creates an axis-aligned box spanning two opposite corners
func NewBoxFromCorners(a, b core.Vec3, mat material.Material) *Box {
	bounds := core.NewAABB(a, b)
	return NewBox(bounds.Centroid(), bounds.Diagonal().Multiply(0.5), 0, mat)
}

func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = corners[i].MultiplyVec(b.HalfSize).RotateY(b.RotationY).Add(b.Center)
	}

	// Each face is wound so that U × V points out of the box
	faces := [6][3]int{
		{4, 5, 7}, // front (Z+)
		{1, 0, 2}, // back (Z-)
		{5, 1, 6}, // right (X+)
		{0, 4, 3}, // left (X-)
		{3, 7, 2}, // top (Y+)
		{4, 0, 5}, // bottom (Y-)
	}

	b.area = 0
	for i, f := range faces {
		origin := corners[f[0]]
		b.faces[i] = NewQuad(origin, corners[f[1]].Subtract(origin), corners[f[2]].Subtract(origin), b.mat)
		b.area += b.faces[i].Area()
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...)
}

// Intersect returns the nearest face hit, attributed to the box
func (b *Box) Intersect(ray core.Ray) Intersection {
	closest := NoHit()
	for _, face := range b.faces {
		if hit := face.Intersect(ray); hit.Happened && hit.Distance < closest.Distance {
			closest = hit
		}
	}
	if closest.Happened {
		closest.Primitive = b
	}
	return closest
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// Area returns the summed area of the six faces
func (b *Box) Area() float64 {
	return b.area
}

// Sample picks a face in proportion to its area and samples it uniformly
func (b *Box) Sample(sampler core.Sampler) SurfaceSample {
	p := sampler.Get1D() * b.area
	face := b.faces[len(b.faces)-1]
	for _, f := range b.faces {
		if p < f.Area() {
			face = f
			break
		}
		p -= f.Area()
	}

	sample := face.Sample(sampler)
	sample.PDF = 1.0 / b.area
	return sample
}

// Material returns the box's material
func (b *Box) Material() material.Material {
	return b.mat
}

// Faces returns the six quads that make up the box
func (b *Box) Faces() []*Quad {
	return b.faces[:]
}
