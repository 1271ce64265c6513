package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // For list properties, the type of the count
}

// plyElement is one "element" block of the header
type plyElement struct {
	Name  string
	Count int
	Props []plyProperty
}

// plyHeader represents the parsed header information from a PLY file
type plyHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Elements []plyElement
}

// plyValueReader yields the body's scalar values one at a time
type plyValueReader interface {
	Read(dataType string) (float64, error)
}

// LoadPLYFile loads vertex positions and faces from a PLY file
func LoadPLYFile(path string) (*MeshData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ply: %w", err)
	}
	defer file.Close()

	mesh, err := LoadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// LoadPLY reads ASCII or binary PLY data. Only the x, y, z vertex
// properties and the face vertex lists are kept; every other element and
// property is read and discarded.
func LoadPLY(r io.Reader) (*MeshData, error) {
	reader := bufio.NewReader(r)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("parse ply header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		values = &plyBinaryReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported ply format %q", header.Format)
	}

	mesh := &MeshData{}
	for _, element := range header.Elements {
		if err := readPLYElement(values, element, mesh); err != nil {
			return nil, fmt.Errorf("read %s: %w", element.Name, err)
		}
	}

	for _, index := range mesh.Indices {
		if index < 0 || index >= len(mesh.Vertices) {
			return nil, fmt.Errorf("face index %d out of range (%d vertices)", index, len(mesh.Vertices))
		}
	}
	return mesh, nil
}

// parsePLYHeader reads lines up to and including end_header, leaving the
// reader positioned at the first byte of the body
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	first := true
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("missing end_header: %w", err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("not a ply file")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid format line %q", line)
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Props = append(current.Props, prop)
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		return plyProperty{IsList: true, CountType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return plyProperty{Type: parts[0], Name: parts[1]}, nil
}

func readPLYElement(values plyValueReader, element plyElement, mesh *MeshData) error {
	for i := 0; i < element.Count; i++ {
		var position [3]float64
		for _, prop := range element.Props {
			if !prop.IsList {
				value, err := values.Read(prop.Type)
				if err != nil {
					return err
				}
				switch prop.Name {
				case "x":
					position[0] = value
				case "y":
					position[1] = value
				case "z":
					position[2] = value
				}
				continue
			}

			count, err := values.Read(prop.CountType)
			if err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("negative list length %v", count)
			}
			items := make([]int, int(count))
			for j := range items {
				value, err := values.Read(prop.Type)
				if err != nil {
					return err
				}
				items[j] = int(value)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				for j := 1; j+1 < len(items); j++ {
					mesh.Indices = append(mesh.Indices, items[0], items[j], items[j+1])
				}
			}
		}
		if element.Name == "vertex" {
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(position[0], position[1], position[2]))
		}
	}
	return nil
}

// getTypeSize returns the size in bytes of a PLY scalar type
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *plyBinaryReader) Read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unknown ply type %q", dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (a *plyASCIIReader) Read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", dataType, err)
	}
	return value, nil
}
