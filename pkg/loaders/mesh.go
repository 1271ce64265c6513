package loaders

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("loaders")

// MeshData is an indexed triangle list: every three entries of Indices name
// the vertices of one triangle.
type MeshData struct {
	Vertices []core.Vec3
	Indices  []int
}

// TriangleCount returns the number of triangles described by the indices
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the box around all vertices
func (m *MeshData) Bounds() core.AABB {
	return core.NewAABBFromPoints(m.Vertices...)
}

// FitTo uniformly scales and translates the vertices so the mesh is centered
// in target on the X and Z axes, rests on target's floor and fits inside it.
// Meshes or targets with no extent are left untouched.
func (m *MeshData) FitTo(target core.AABB) {
	bounds := m.Bounds()
	if bounds.IsEmpty() || target.IsEmpty() {
		return
	}

	size := bounds.Diagonal()
	want := target.Diagonal()
	scale := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if s := size.Axis(axis); s > 0 {
			scale = math.Min(scale, want.Axis(axis)/s)
		}
	}
	if math.IsInf(scale, 1) || scale <= 0 {
		return
	}

	center := bounds.Centroid()
	targetCenter := target.Centroid()
	offset := core.NewVec3(
		targetCenter.X-center.X*scale,
		target.Min.Y-bounds.Min.Y*scale,
		targetCenter.Z-center.Z*scale,
	)
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Multiply(scale).Add(offset)
	}
}

// LoadMesh loads a triangle mesh, choosing the format from the file extension
func LoadMesh(path string) (*MeshData, error) {
	start := time.Now()

	var (
		mesh *MeshData
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = LoadOBJFile(path)
	case ".gltf", ".glb":
		mesh, err = LoadGLTF(path)
	case ".ply":
		mesh, err = LoadPLYFile(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	logger.Debugf("loaded %s: %d vertices, %d triangles in %s",
		filepath.Base(path), len(mesh.Vertices), mesh.TriangleCount(), time.Since(start))
	return mesh, nil
}
