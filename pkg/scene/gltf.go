package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .gltf or .glb file
func LoadGLTF(filePath string) (*Registry, error) {
	doc, err := gltf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF file: %w", err)
	}
	return FromGLTF(doc)
}

// FromGLTF flattens the default scene of a document into a registry.
// Node transforms are baked into world-space triangles. A node with a mesh
// becomes a Mesh named after the node (or the mesh when the node is
// unnamed); a node with a mesh and children becomes a Group holding that
// Mesh followed by the children.
func FromGLTF(doc *gltf.Document) (*Registry, error) {
	l := &gltfLoader{doc: doc}

	rootName := "scene"
	roots, err := l.sceneRoots()
	if err != nil {
		return nil, err
	}
	if doc.Scene != nil && *doc.Scene < uint32(len(doc.Scenes)) && doc.Scenes[*doc.Scene].Name != "" {
		rootName = doc.Scenes[*doc.Scene].Name
	}

	l.builder = NewBuilder(rootName)
	for _, idx := range roots {
		if err := l.addNode(idx, l.builder.Root(), geometry.Identity(), 0); err != nil {
			return nil, err
		}
	}
	return l.builder.Build()
}

// maxNodeDepth guards against cyclic node graphs in malformed files
const maxNodeDepth = 256

type gltfLoader struct {
	doc     *gltf.Document
	builder *Builder
}

func (l *gltfLoader) sceneRoots() ([]uint32, error) {
	doc := l.doc
	if len(doc.Scenes) > 0 {
		var idx uint32
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx >= uint32(len(doc.Scenes)) {
			return nil, fmt.Errorf("default scene %d out of range", idx)
		}
		return doc.Scenes[idx].Nodes, nil
	}

	// No scenes: every node that is nobody's child is a root
	isChild := make(map[uint32]bool)
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			isChild[child] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots, nil
}

func (l *gltfLoader) addNode(idx uint32, parent NodeID, parentWorld geometry.Matrix4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d levels", maxNodeDepth)
	}
	if idx >= uint32(len(l.doc.Nodes)) {
		return fmt.Errorf("node index %d out of range", idx)
	}

	node := l.doc.Nodes[idx]
	world := parentWorld.Mul(localMatrix(node))

	if node.Mesh == nil {
		group := l.builder.AddGroup(parent, node.Name)
		return l.addChildren(node, group, world, depth)
	}

	triangles, col, err := l.meshTriangles(*node.Mesh, world)
	if err != nil {
		return fmt.Errorf("node %q: %w", node.Name, err)
	}
	name := node.Name
	if name == "" {
		name = l.doc.Meshes[*node.Mesh].Name
	}

	if len(node.Children) == 0 {
		l.builder.AddMesh(parent, name, triangles, col)
		return nil
	}

	group := l.builder.AddGroup(parent, node.Name)
	l.builder.AddMesh(group, name, triangles, col)
	return l.addChildren(node, group, world, depth)
}

func (l *gltfLoader) addChildren(node *gltf.Node, group NodeID, world geometry.Matrix4, depth int) error {
	for _, child := range node.Children {
		if err := l.addNode(child, group, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// meshTriangles reads all triangle primitives of a mesh, transformed to world space.
// The colour comes from the first primitive with a base colour factor.
func (l *gltfLoader) meshTriangles(meshIdx uint32, world geometry.Matrix4) ([]geometry.Triangle, color.RGBA, error) {
	doc := l.doc
	if meshIdx >= uint32(len(doc.Meshes)) {
		return nil, DefaultColor, fmt.Errorf("mesh index %d out of range", meshIdx)
	}

	col := DefaultColor
	colorSet := false
	var triangles []geometry.Triangle

	for _, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || posIdx >= uint32(len(doc.Accessors)) {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, col, fmt.Errorf("failed to read positions: %w", err)
		}

		var indices []uint32
		if prim.Indices != nil && *prim.Indices < uint32(len(doc.Accessors)) {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, col, fmt.Errorf("failed to read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
			if a >= len(positions) || b >= len(positions) || c >= len(positions) {
				return nil, col, fmt.Errorf("index out of range in primitive")
			}
			tri := geometry.NewTriangle(toVector(positions[a]), toVector(positions[b]), toVector(positions[c]))
			triangles = append(triangles, tri.Transform(world))
		}

		if !colorSet && prim.Material != nil {
			if c, ok := l.baseColor(*prim.Material); ok {
				col = c
				colorSet = true
			}
		}
	}

	return triangles, col, nil
}

func (l *gltfLoader) baseColor(materialIdx uint32) (color.RGBA, bool) {
	if materialIdx >= uint32(len(l.doc.Materials)) {
		return color.RGBA{}, false
	}
	pbr := l.doc.Materials[materialIdx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return color.RGBA{}, false
	}
	f := *pbr.BaseColorFactor
	return color.RGBA{R: toByte(f[0]), G: toByte(f[1]), B: toByte(f[2]), A: 255}, true
}

// localMatrix returns the node's matrix, or its TRS properties composed.
// Zero-valued fields are treated as their glTF defaults.
func localMatrix(node *gltf.Node) geometry.Matrix4 {
	if node.Matrix != [16]float64{} && geometry.Matrix4(node.Matrix) != geometry.Identity() {
		return geometry.Matrix4(node.Matrix)
	}

	rotation := node.Rotation
	if rotation == [4]float64{} {
		rotation = [4]float64{0, 0, 0, 1}
	}
	scale := node.Scale
	if scale == [3]float64{} {
		scale = [3]float64{1, 1, 1}
	}
	return geometry.Compose(node.Translation, rotation, scale)
}

func toVector(p [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(p[0]), float64(p[1]), float64(p[2]))
}

func toByte(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}
