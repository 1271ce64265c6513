package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// createTestPLY writes a binary square made of one quad face, with per-vertex
// normals and colors that the loader must skip
func createTestPLY(t *testing.T, order binary.ByteOrder, format string) []byte {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment test square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property float nx\n")
	buf.WriteString("property uchar red\n")
	buf.WriteString("element face 1\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range vertices {
		binary.Write(&buf, order, v)
		binary.Write(&buf, order, float32(1))
		binary.Write(&buf, order, uint8(255))
	}

	binary.Write(&buf, order, uint8(4))
	binary.Write(&buf, order, []int32{0, 1, 2, 3})
	return buf.Bytes()
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name   string
		order  binary.ByteOrder
		format string
	}{
		{"little endian", binary.LittleEndian, "binary_little_endian"},
		{"big endian", binary.BigEndian, "binary_big_endian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := LoadPLY(bytes.NewReader(createTestPLY(t, tt.order, tt.format)))
			if err != nil {
				t.Fatalf("LoadPLY: %v", err)
			}

			if len(mesh.Vertices) != 4 {
				t.Fatalf("Expected 4 vertices, got %d", len(mesh.Vertices))
			}
			if mesh.Vertices[2] != core.NewVec3(1, 1, 0) {
				t.Errorf("vertex 2 = %v", mesh.Vertices[2])
			}

			// The quad is fanned into two triangles
			want := []int{0, 1, 2, 0, 2, 3}
			if len(mesh.Indices) != len(want) {
				t.Fatalf("Expected indices %v, got %v", want, mesh.Indices)
			}
			for i := range want {
				if mesh.Indices[i] != want[i] {
					t.Fatalf("Expected indices %v, got %v", want, mesh.Indices)
				}
			}
		})
	}
}

func TestLoadPLY_ASCII(t *testing.T) {
	const data = `ply
format ascii 1.0
element vertex 3
property double x
property double y
property double z
element face 1
property list uchar int vertex_index
end_header
0 0 0
2 0 0
0 -3 0.5
3 2 1 0
`
	mesh, err := LoadPLY(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadPLY: %v", err)
	}
	if mesh.Vertices[2] != core.NewVec3(0, -3, 0.5) {
		t.Errorf("vertex 2 = %v", mesh.Vertices[2])
	}
	if mesh.TriangleCount() != 1 || mesh.Indices[0] != 2 || mesh.Indices[2] != 0 {
		t.Errorf("unexpected indices %v", mesh.Indices)
	}
}

func TestLoadPLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not ply", "obj\nend_header\n"},
		{"missing end_header", "ply\nformat ascii 1.0\n"},
		{"unknown format", "ply\nformat utf16 1.0\nend_header\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n3 0 0 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadPLY(strings.NewReader(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadMesh_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	plyPath := filepath.Join(dir, "square.ply")
	if err := os.WriteFile(plyPath, createTestPLY(t, binary.LittleEndian, "binary_little_endian"), 0o644); err != nil {
		t.Fatal(err)
	}
	objPath := filepath.Join(dir, "tri.OBJ")
	if err := os.WriteFile(objPath, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if mesh, err := LoadMesh(plyPath); err != nil || mesh.TriangleCount() != 2 {
		t.Errorf("ply: mesh %v, err %v", mesh, err)
	}
	if mesh, err := LoadMesh(objPath); err != nil || mesh.TriangleCount() != 1 {
		t.Errorf("obj: mesh %v, err %v", mesh, err)
	}
	if _, err := LoadMesh(filepath.Join(dir, "scene.fbx")); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
	if _, err := LoadMesh(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
