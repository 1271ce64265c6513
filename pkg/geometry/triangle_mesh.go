package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// ErrEmptyMesh is returned when a mesh has no triangle with positive area
var ErrEmptyMesh = errors.New("mesh has no non-degenerate triangles")

// TriangleMesh is a single primitive made of many triangles. It keeps its
// own BVH for intersection and area sampling.
type TriangleMesh struct {
	triangles []Primitive
	bvh       *BVH
	mat       material.Material
}

// NewTriangleMesh creates a mesh from vertices and triangle indices.
// Every group of three indices forms one triangle; zero-area triangles are dropped.
func NewTriangleMesh(vertices []core.Vec3, indices []int, mat material.Material, opts BVHOptions) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	triangles := make([]Primitive, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0, %d)", i/3, idx, len(vertices))
			}
		}

		tri := NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		if tri.Area() <= 0 {
			continue
		}
		triangles = append(triangles, tri)
	}

	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles, opts),
		mat:       mat,
	}, nil
}

// Intersect returns the nearest triangle hit, attributed to the mesh
func (m *TriangleMesh) Intersect(ray core.Ray) Intersection {
	hit := m.bvh.Intersect(ray)
	if hit.Happened {
		hit.Primitive = m
	}
	return hit
}

// BoundingBox returns the bounds of all triangles
func (m *TriangleMesh) BoundingBox() core.AABB {
	return m.bvh.BoundingBox()
}

// Area returns the summed triangle area
func (m *TriangleMesh) Area() float64 {
	return m.bvh.Area()
}

// Sample draws a point uniformly over the mesh surface
func (m *TriangleMesh) Sample(sampler core.Sampler) SurfaceSample {
	sample, _ := m.bvh.Sample(sampler)
	return sample
}

// Material returns the mesh material
func (m *TriangleMesh) Material() material.Material {
	return m.mat
}

// TriangleCount returns the number of triangles kept by the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}

// Stats returns statistics of the mesh's internal BVH
func (m *TriangleMesh) Stats() BVHStats {
	return m.bvh.Stats()
}
