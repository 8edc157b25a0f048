// Package picking resolves pointer positions to meshes by casting a ray
// from the camera through the model registry.
package picking

import (
	"sort"

	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// Viewport is the size of the render surface in pixels
type Viewport struct {
	Width  float64
	Height float64
}

// Hit is one ray/mesh intersection
type Hit struct {
	Mesh     scene.NodeID
	Distance float64
	Point    geometry.Vector3
}

// Resolver performs pick queries. The zero value picks against every mesh.
type Resolver struct {
	// SkipHidden excludes meshes whose Visible flag is false
	SkipHidden bool
}

// Intersections returns every mesh hit by the ray through the pointer
// position, nearest first. A nil registry yields no hits.
func (r Resolver) Intersections(reg *scene.Registry, cam *viewer.Camera, vp Viewport, px, py float64) []Hit {
	if reg == nil || cam == nil || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}

	ndcX, ndcY := viewer.ScreenToNDC(px, py, vp.Width, vp.Height)
	ray := cam.RayFromNDC(ndcX, ndcY, vp.Width/vp.Height)

	var hits []Hit
	for _, mesh := range reg.Meshes() {
		if r.SkipHidden && !mesh.Visible {
			continue
		}
		if dist, ok := intersectMesh(mesh, ray); ok {
			hits = append(hits, Hit{Mesh: mesh.ID(), Distance: dist, Point: ray.At(dist)})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Pick returns the nearest mesh under the pointer
func (r Resolver) Pick(reg *scene.Registry, cam *viewer.Camera, vp Viewport, px, py float64) (scene.NodeID, bool) {
	hits := r.Intersections(reg, cam, vp, px, py)
	if len(hits) == 0 {
		return scene.NoNode, false
	}
	return hits[0].Mesh, true
}

// intersectMesh returns the nearest triangle hit of a mesh
func intersectMesh(mesh *scene.Mesh, ray geometry.Ray) (float64, bool) {
	if !mesh.Bounds.IntersectRay(ray) {
		return 0, false
	}

	nearest := 0.0
	found := false
	for _, tri := range mesh.Triangles {
		if dist, ok := tri.IntersectRay(ray); ok && (!found || dist < nearest) {
			nearest = dist
			found = true
		}
	}
	return nearest, found
}
