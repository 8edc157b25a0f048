package scene

import (
	"fmt"
	"image/color"

	"github.com/philipparndt/goanatomy/pkg/geometry"
)

// Builder assembles a Registry. The first error is kept and reported by Build.
type Builder struct {
	reg *Registry
	err error
}

// NewBuilder starts a registry with a root group
func NewBuilder(rootName string) *Builder {
	reg := &Registry{
		byName: make(map[string]NodeID),
		bounds: geometry.NewBoundingBox(),
	}
	reg.nodes = append(reg.nodes, &Group{nodeBase: nodeBase{id: 0, name: rootName, parent: NoNode}})
	reg.root = 0
	return &Builder{reg: reg}
}

// Root returns the root group's id
func (b *Builder) Root() NodeID {
	return b.reg.root
}

// AddGroup adds a group under parent
func (b *Builder) AddGroup(parent NodeID, name string) NodeID {
	group, ok := b.parentGroup(parent)
	if !ok {
		return NoNode
	}
	id := NodeID(len(b.reg.nodes))
	b.reg.nodes = append(b.reg.nodes, &Group{nodeBase: nodeBase{id: id, name: name, parent: parent}})
	group.Children = append(group.Children, id)
	return id
}

// AddMesh adds a mesh with world-space triangles under parent
func (b *Builder) AddMesh(parent NodeID, name string, triangles []geometry.Triangle, col color.RGBA) NodeID {
	group, ok := b.parentGroup(parent)
	if !ok {
		return NoNode
	}
	id := NodeID(len(b.reg.nodes))
	mesh := newMesh(id, parent, name, triangles, col)
	b.reg.nodes = append(b.reg.nodes, mesh)
	group.Children = append(group.Children, id)
	b.reg.bounds.Union(mesh.Bounds)
	return id
}

func (b *Builder) parentGroup(parent NodeID) (*Group, bool) {
	if b.err != nil {
		return nil, false
	}
	node, ok := b.reg.Node(parent)
	if !ok {
		b.err = fmt.Errorf("parent node %d does not exist", parent)
		return nil, false
	}
	group, ok := node.(*Group)
	if !ok {
		b.err = fmt.Errorf("parent node %d (%s) is not a group", parent, node.Name())
		return nil, false
	}
	return group, true
}

// Build finalizes the registry and indexes mesh names in traversal order.
// The builder must not be used afterwards.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	reg := b.reg
	seen := make(map[string]bool)
	for _, mesh := range reg.Meshes() {
		name := mesh.Name()
		if _, exists := reg.byName[name]; exists {
			if !seen[name] {
				reg.duplicates = append(reg.duplicates, name)
				seen[name] = true
			}
			continue
		}
		reg.byName[name] = mesh.ID()
	}

	b.reg = nil
	return reg, nil
}
