package loaders

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF loads every triangle primitive of a glTF or GLB file into one mesh
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return MeshFromGLTF(doc)
}

// MeshFromGLTF merges the triangle primitives of all meshes in doc. Node
// transforms are not applied; points, lines and strips are skipped.
func MeshFromGLTF(doc *gltf.Document) (*MeshData, error) {
	mesh := &MeshData{}
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if err := appendGLTFPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
		}
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("gltf: no triangle primitives")
	}
	return mesh, nil
}

func appendGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *MeshData) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	if posIdx < 0 || posIdx >= len(doc.Accessors) {
		return fmt.Errorf("position accessor %d out of range", posIdx)
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	base := len(mesh.Vertices)
	for _, p := range positions {
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
	}

	if prim.Indices == nil {
		// Unindexed: consecutive triples of positions
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Indices = append(mesh.Indices, base+i, base+i+1, base+i+2)
		}
		return nil
	}

	idx := *prim.Indices
	if idx < 0 || idx >= len(doc.Accessors) {
		return fmt.Errorf("index accessor %d out of range", idx)
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[idx], nil)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Indices = append(mesh.Indices,
			base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
	}
	return nil
}
