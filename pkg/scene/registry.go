package scene

import (
	"fmt"

	"github.com/philipparndt/goanatomy/pkg/geometry"
)

// Registry owns every node of a loaded model. Nodes are never shared
// outside it; callers hold NodeIDs.
type Registry struct {
	nodes      []Node
	root       NodeID
	byName     map[string]NodeID
	duplicates []string
	bounds     geometry.BoundingBox
}

// Root returns the root group
func (r *Registry) Root() NodeID {
	return r.root
}

// Len returns the number of nodes, groups included
func (r *Registry) Len() int {
	return len(r.nodes)
}

// Node returns the node for id
func (r *Registry) Node(id NodeID) (Node, bool) {
	if r == nil || id < 0 || int(id) >= len(r.nodes) {
		return nil, false
	}
	return r.nodes[id], true
}

// Mesh returns the mesh for id, or false if id is not a mesh
func (r *Registry) Mesh(id NodeID) (*Mesh, bool) {
	node, ok := r.Node(id)
	if !ok {
		return nil, false
	}
	mesh, ok := node.(*Mesh)
	return mesh, ok
}

// MeshByName looks up a mesh by its name. With duplicate names the first
// mesh in traversal order wins.
func (r *Registry) MeshByName(name string) (*Mesh, bool) {
	if r == nil {
		return nil, false
	}
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.Mesh(id)
}

// Duplicates lists mesh names that occur more than once
func (r *Registry) Duplicates() []string {
	return r.duplicates
}

// Bounds returns the bounding box of all meshes
func (r *Registry) Bounds() geometry.BoundingBox {
	return r.bounds
}

// Walk visits the tree depth-first from the root, parents before children.
// Returning false from fn skips the node's subtree.
func (r *Registry) Walk(fn func(Node) bool) {
	if r == nil || len(r.nodes) == 0 {
		return
	}
	r.walk(r.root, fn)
}

func (r *Registry) walk(id NodeID, fn func(Node) bool) {
	node := r.nodes[id]
	if !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Group:
		for _, child := range n.Children {
			r.walk(child, fn)
		}
	case *Mesh:
		// leaf
	default:
		panic(fmt.Sprintf("scene: unknown node type %T", node))
	}
}

// Meshes returns every mesh in traversal order
func (r *Registry) Meshes() []*Mesh {
	var meshes []*Mesh
	r.Walk(func(node Node) bool {
		if mesh, ok := node.(*Mesh); ok {
			meshes = append(meshes, mesh)
		}
		return true
	})
	return meshes
}

// PrepareMaterials marks every material as transparent-capable so that
// opacity changes take effect. Loaders call it once.
func (r *Registry) PrepareMaterials() {
	for _, mesh := range r.Meshes() {
		mesh.Material.Transparent = true
	}
}

// TriangleCount returns the number of triangles across all meshes
func (r *Registry) TriangleCount() int {
	count := 0
	for _, mesh := range r.Meshes() {
		count += len(mesh.Triangles)
	}
	return count
}
