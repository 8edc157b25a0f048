// Package analysis computes statistics over a loaded model and checks how
// well its meshes are covered by the metadata store.
package analysis

import (
	"fmt"
	"sort"

	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
)

// MeshStats describes one mesh
type MeshStats struct {
	ID            scene.NodeID
	Name          string
	TriangleCount int
	SurfaceArea   float64
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Annotated     bool
}

// ModelStats aggregates every mesh of a registry
type ModelStats struct {
	Meshes        []MeshStats
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	GroupCount    int
}

// Coverage relates mesh names to metadata records
type Coverage struct {
	Annotated   []string         // meshes with a record
	Unannotated []string         // meshes without a record, never showing a panel
	Orphans     []anatomy.PartID // records with no mesh of that name
	Duplicates  []string         // mesh names used more than once
}

// AnalyzeMesh computes the statistics of a single mesh
func AnalyzeMesh(mesh *scene.Mesh) MeshStats {
	stats := MeshStats{
		ID:            mesh.ID(),
		Name:          mesh.Name(),
		TriangleCount: len(mesh.Triangles),
		BoundingBox:   mesh.Bounds,
	}
	for _, tri := range mesh.Triangles {
		stats.SurfaceArea += tri.Area()
	}
	if !mesh.Bounds.IsEmpty() {
		stats.Dimensions = mesh.Bounds.Size()
	}
	return stats
}

// AnalyzeModel computes statistics for every mesh of the registry. store
// may be nil, in which case no mesh counts as annotated.
func AnalyzeModel(reg *scene.Registry, store *anatomy.Store) *ModelStats {
	result := &ModelStats{BoundingBox: reg.Bounds()}

	reg.Walk(func(node scene.Node) bool {
		switch n := node.(type) {
		case *scene.Group:
			result.GroupCount++
		case *scene.Mesh:
			stats := AnalyzeMesh(n)
			_, stats.Annotated = store.Lookup(anatomy.PartID(n.Name()))
			result.Meshes = append(result.Meshes, stats)
			result.TriangleCount += stats.TriangleCount
			result.SurfaceArea += stats.SurfaceArea
		}
		return true
	})

	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
	}
	return result
}

// CheckCoverage lists annotated and unannotated meshes, and records without
// a mesh. All lists are sorted.
func CheckCoverage(reg *scene.Registry, store *anatomy.Store) Coverage {
	var cov Coverage
	seen := make(map[anatomy.PartID]bool)

	for _, mesh := range reg.Meshes() {
		id := anatomy.PartID(mesh.Name())
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, ok := store.Lookup(id); ok {
			cov.Annotated = append(cov.Annotated, mesh.Name())
		} else {
			cov.Unannotated = append(cov.Unannotated, mesh.Name())
		}
	}

	for _, id := range store.IDs() {
		if !seen[id] {
			cov.Orphans = append(cov.Orphans, id)
		}
	}

	cov.Duplicates = append(cov.Duplicates, reg.Duplicates()...)

	sort.Strings(cov.Annotated)
	sort.Strings(cov.Unannotated)
	sort.Strings(cov.Duplicates)
	return cov
}

// FormatVector formats a vector for display
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// FormatMeasurement formats a value with an optional unit
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.3f", value)
	}
	return fmt.Sprintf("%.3f %s", value, unit)
}
