package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// LoadOBJFile loads the geometry of a Wavefront OBJ file
func LoadOBJFile(path string) (*MeshData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer file.Close()

	mesh, err := LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// LoadOBJ reads vertex positions and faces from OBJ text. Faces with more
// than three corners are split into a triangle fan. Texture coordinates,
// normals, groups and materials are ignored.
func LoadOBJ(r io.Reader) (*MeshData, error) {
	mesh := &MeshData{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				value, err := strconv.ParseFloat(parts[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				xyz[i] = value
			}
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(xyz[0], xyz[1], xyz[2]))

		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]int, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				index, err := parseOBJIndex(ref, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, index)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	return mesh, nil
}

// parseOBJIndex resolves the position part of a face corner (v, v/vt, v//vn
// or v/vt/vn) to a zero-based vertex index. Negative indices count back from
// the most recent vertex.
func parseOBJIndex(ref string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	index, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", ref)
	}

	switch {
	case index > 0:
		index--
	case index < 0:
		index += vertexCount
	default:
		return 0, fmt.Errorf("face index 0 is not valid")
	}

	if index < 0 || index >= vertexCount {
		return 0, fmt.Errorf("face index %s out of range (%d vertices)", ref, vertexCount)
	}
	return index, nil
}
