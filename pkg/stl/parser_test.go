package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const twoSolids = `solid Biceps_Brachii
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid Biceps_Brachii
solid Triceps_Brachii
  facet normal 0 0 1
    outer loop
      vertex 2 0 0
      vertex 3 0 0
      vertex 2 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 3 0 0
      vertex 3 1 0
      vertex 2 1 0
    endloop
  endfacet
endsolid Triceps_Brachii
`

func TestParseASCIIMultipleSolids(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.stl")
	if err := os.WriteFile(path, []byte(twoSolids), 0o644); err != nil {
		t.Fatal(err)
	}

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Solids) != 2 {
		t.Fatalf("expected 2 solids, got %d", len(model.Solids))
	}
	if model.Solids[0].Name != "Biceps_Brachii" || model.Solids[1].Name != "Triceps_Brachii" {
		t.Errorf("unexpected solid names: %q, %q", model.Solids[0].Name, model.Solids[1].Name)
	}
	if len(model.Solids[1].Triangles) != 2 {
		t.Errorf("expected 2 triangles in second solid, got %d", len(model.Solids[1].Triangles))
	}
	if model.TriangleCount() != 3 {
		t.Errorf("expected 3 triangles total, got %d", model.TriangleCount())
	}

	bbox := model.BoundingBox()
	if bbox.Max.X != 3 || bbox.Min.X != 0 {
		t.Errorf("unexpected bounding box: %+v", bbox)
	}
}

func TestParseASCIIInvalidCoordinate(t *testing.T) {
	_, err := ParseBytes([]byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex a 0 0\n"))
	if err == nil {
		t.Fatal("expected error for invalid coordinate")
	}
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, binaryHeaderSize)
	copy(header, "solid Deltoid") // binary exporters sometimes start with "solid"
	buf.Write(header)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(1))
	_ = binary.Write(&buf, binary.LittleEndian, binaryFacet{
		Normal: [3]float32{0, 0, 1},
		V1:     [3]float32{0, 0, 0},
		V2:     [3]float32{1, 0, 0},
		V3:     [3]float32{0, 1, 0},
	})

	model, err := ParseBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if len(model.Solids) != 1 || model.Solids[0].Name != "Deltoid" {
		t.Fatalf("unexpected solids: %+v", model.Solids)
	}
	if len(model.Solids[0].Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(model.Solids[0].Triangles))
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	tests := []struct {
		name  string
		count uint32
		body  int
	}{
		{"huge declared count", 0x40000000, 0},
		{"one facet short", 2, 50},
		{"partial facet", 1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, binaryHeaderSize+4+tt.body)
			copy(data, "binary")
			binary.LittleEndian.PutUint32(data[binaryHeaderSize:], tt.count)

			if _, err := ParseBytes(data); err == nil {
				t.Fatal("expected an error for a truncated file")
			}
		})
	}
}

func TestParseBinaryShortHeader(t *testing.T) {
	if _, err := ParseBytes([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected an error for a file shorter than the header")
	}
}
