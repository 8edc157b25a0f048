package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/goanatomy/pkg/geometry"
)

// binaryHeaderSize is the fixed header length of a binary STL file
const binaryHeaderSize = 80

// binaryFacetSize is the on-disk size of one binary facet record
const binaryFacetSize = 50

// Parse reads an STL file and returns a Model.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses STL data already held in memory
func ParseBytes(data []byte) (*Model, error) {
	if isASCII(data) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(data)
}

// isASCII checks the "solid" prefix. Some binary exporters also start their
// header with "solid", so the declared triangle count is checked against the
// file length as well.
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return false
	}
	if len(data) >= binaryHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
		if int64(binaryHeaderSize+4)+int64(count)*binaryFacetSize == int64(len(data)) {
			return false
		}
	}
	return true
}

// parseASCII parses an ASCII STL file; every solid block becomes a Solid
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := &Model{}

	var current *Solid
	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			current = model.AddSolid(strings.Join(fields[1:], " "))

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if current == nil {
				// Facets without a solid header still belong somewhere
				current = model.AddSolid("")
			}
			if len(vertices) == 3 {
				current.Triangles = append(current.Triangles,
					geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]

		case "endsolid":
			current = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseVertex(fields []string) (geometry.Vector3, error) {
	var coords [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		coords[i] = value
	}
	return geometry.VectorFrom(coords), nil
}

// binaryFacet mirrors the 50-byte on-disk facet record
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL file into a single solid named from the header
func parseBinary(data []byte) (*Model, error) {
	if len(data) < binaryHeaderSize+4 {
		return nil, fmt.Errorf("failed to read header: file is %d bytes, need at least %d", len(data), binaryHeaderSize+4)
	}
	header := data[:binaryHeaderSize]
	triangleCount := binary.LittleEndian.Uint32(data[binaryHeaderSize:])

	body := data[binaryHeaderSize+4:]
	if int64(triangleCount)*binaryFacetSize > int64(len(body)) {
		return nil, fmt.Errorf("truncated binary STL: header declares %d triangles, data holds %d",
			triangleCount, len(body)/binaryFacetSize)
	}

	model := &Model{}
	name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	solid := model.AddSolid(strings.TrimSpace(strings.TrimPrefix(name, "solid")))
	solid.Triangles = make([]geometry.Triangle, 0, triangleCount)

	reader := bytes.NewReader(body)
	for i := uint32(0); i < triangleCount; i++ {
		var facet binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		solid.Triangles = append(solid.Triangles, geometry.NewTriangle(
			toVector(facet.V1), toVector(facet.V2), toVector(facet.V3),
		))
	}

	return model, nil
}

func toVector(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
