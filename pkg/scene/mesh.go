package scene

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// LoadMeshInto loads a mesh file and adds it to the scene as a single
// triangle mesh primitive with its own internal BVH. A non-empty fit box
// rescales the mesh to stand inside it.
func LoadMeshInto(s *Scene, path string, mat material.Material, fit core.AABB) error {
	data, err := loaders.LoadMesh(path)
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}
	if !fit.IsEmpty() {
		data.FitTo(fit)
	}

	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Indices, mat, s.config.Accelerator)
	if err != nil {
		return fmt.Errorf("build mesh %s: %w", path, err)
	}
	s.AddPrimitive(mesh)

	logger.Infof("added mesh %s with %d triangles", path, mesh.TriangleCount())
	return nil
}
