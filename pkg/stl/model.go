package stl

import (
	"github.com/philipparndt/goanatomy/pkg/geometry"
)

// Solid is one named body in an STL file. ASCII files may contain several
// `solid <name> ... endsolid` blocks; binary files always hold one.
type Solid struct {
	Name      string
	Triangles []geometry.Triangle
}

// Model represents a complete STL file
type Model struct {
	Solids []Solid
}

// AddSolid starts a new solid and returns a pointer to it
func (m *Model) AddSolid(name string) *Solid {
	m.Solids = append(m.Solids, Solid{Name: name})
	return &m.Solids[len(m.Solids)-1]
}

// TriangleCount returns the number of triangles across all solids
func (m *Model) TriangleCount() int {
	count := 0
	for _, s := range m.Solids {
		count += len(s.Triangles)
	}
	return count
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, s := range m.Solids {
		for _, triangle := range s.Triangles {
			bbox.Extend(triangle.V1)
			bbox.Extend(triangle.V2)
			bbox.Extend(triangle.V3)
		}
	}
	return bbox
}
