// Package scene is the model registry: a tree of named group and mesh
// nodes, addressed by NodeID, each mesh owning its own material state.
package scene

import (
	"image/color"

	"github.com/philipparndt/goanatomy/pkg/geometry"
)

// NodeID indexes the registry's node table
type NodeID int

// NoNode marks the absence of a node (the root's parent, an empty selection)
const NoNode NodeID = -1

// Node is either a *Group or a *Mesh
type Node interface {
	ID() NodeID
	Name() string
	Parent() NodeID
	sealed()
}

type nodeBase struct {
	id     NodeID
	name   string
	parent NodeID
}

func (n *nodeBase) ID() NodeID     { return n.id }
func (n *nodeBase) Name() string   { return n.name }
func (n *nodeBase) Parent() NodeID { return n.parent }
func (n *nodeBase) sealed()        {}

// Group is an interior node with ordered children
type Group struct {
	nodeBase
	Children []NodeID
}

// Material is the per-mesh surface state
type Material struct {
	Color       color.RGBA
	Opacity     float64 // 0..1
	Transparent bool    // must be set for Opacity < 1 to blend
}

// Mesh is a leaf holding world-space geometry and its visual state
type Mesh struct {
	nodeBase
	Triangles []geometry.Triangle
	Bounds    geometry.BoundingBox
	Visible   bool
	Material  Material
}

// DefaultColor is used for meshes whose source carries no material colour
var DefaultColor = color.RGBA{R: 196, G: 78, B: 72, A: 255}

func newMesh(id, parent NodeID, name string, triangles []geometry.Triangle, col color.RGBA) *Mesh {
	bounds := geometry.NewBoundingBox()
	for _, tri := range triangles {
		bounds.Extend(tri.V1)
		bounds.Extend(tri.V2)
		bounds.Extend(tri.V3)
	}
	return &Mesh{
		nodeBase:  nodeBase{id: id, name: name, parent: parent},
		Triangles: triangles,
		Bounds:    bounds,
		Visible:   true,
		Material:  Material{Color: col, Opacity: 1.0},
	}
}
