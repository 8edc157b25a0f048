package raylibview

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
	"github.com/philipparndt/goanatomy/pkg/viewer"
)

// gpuMesh is the uploaded form of one registry mesh. The mesh arrays are Go
// memory, so it must only be released with rl.UnloadMesh.
type gpuMesh struct {
	id   scene.NodeID
	mesh rl.Mesh
}

// uploadRegistry converts every mesh of the registry to a Raylib mesh.
// Must run on the main thread.
func uploadRegistry(reg *scene.Registry, light viewer.Lighting) []gpuMesh {
	var out []gpuMesh
	for _, mesh := range reg.Meshes() {
		if len(mesh.Triangles) == 0 {
			continue
		}
		out = append(out, gpuMesh{id: mesh.ID(), mesh: toRaylibMesh(mesh, light)})
	}
	return out
}

func unloadMeshes(meshes []gpuMesh) {
	for i := range meshes {
		rl.UnloadMesh(&meshes[i].mesh)
	}
}

// toRaylibMesh converts a mesh to a Raylib mesh with baked lighting. The
// light is applied two-sided so inner faces of open meshes are lit too.
func toRaylibMesh(mesh *scene.Mesh, light viewer.Lighting) rl.Mesh {
	triangleCount := len(mesh.Triangles)
	vertexCount := triangleCount * 3

	out := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	colors := make([]uint8, 0, vertexCount*4)

	lightDir := light.Position.Normalize()
	for _, tri := range mesh.Triangles {
		normal := tri.Normal()
		if normal.Dot(lightDir) < 0 {
			normal = normal.Negate()
		}
		col := viewer.Shade(mesh.Material.Color, light.Intensity(normal))

		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			colors = append(colors, col.R, col.G, col.B, 255)
		}
	}

	out.Vertices = &vertices[0]
	out.Normals = &normals[0]
	out.Colors = &colors[0]

	rl.UploadMesh(&out, false)
	return out
}

// drawItem is one mesh of a frame with the alpha it is drawn with
type drawItem struct {
	index int // into the uploaded meshes
	alpha float32
}

// drawPlan orders the uploaded meshes for a frame: opaque meshes first, then
// translucent ones far to near. Hidden and fully transparent meshes are
// dropped. The returned count is the number of opaque items.
func drawPlan(reg *scene.Registry, meshes []gpuMesh, eye geometry.Vector3) ([]drawItem, int) {
	var opaque, translucent []drawItem
	distance := make(map[int]float64)

	for i, gm := range meshes {
		mesh, ok := reg.Mesh(gm.id)
		if !ok || !mesh.Visible || mesh.Material.Opacity <= 0 {
			continue
		}
		if mesh.Material.Transparent && mesh.Material.Opacity < 1 {
			translucent = append(translucent, drawItem{index: i, alpha: float32(mesh.Material.Opacity)})
			distance[i] = mesh.Bounds.Center().Distance(eye)
			continue
		}
		opaque = append(opaque, drawItem{index: i, alpha: 1})
	}

	sort.SliceStable(translucent, func(a, b int) bool {
		return distance[translucent[a].index] > distance[translucent[b].index]
	})
	return append(opaque, translucent...), len(opaque)
}

// drawMeshes draws a frame's meshes with the shared material, tinting the
// albedo for opacity and disabling depth writes for translucent meshes
func drawMeshes(reg *scene.Registry, meshes []gpuMesh, material rl.Material, cam *viewer.Camera) {
	items, opaque := drawPlan(reg, meshes, cam.Position)
	albedo := material.GetMap(rl.MapAlbedo)

	for i, item := range items {
		if i == opaque {
			rl.DisableDepthMask()
		}
		albedo.Color = rl.ColorAlpha(rl.White, item.alpha)
		rl.DrawMesh(meshes[item.index].mesh, material, rl.MatrixIdentity())
	}
	if opaque < len(items) {
		rl.EnableDepthMask()
	}
	albedo.Color = rl.White
}
