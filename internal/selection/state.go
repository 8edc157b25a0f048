// Package selection tracks the currently selected mesh and its record.
package selection

import (
	"github.com/philipparndt/goanatomy/pkg/anatomy"
	"github.com/philipparndt/goanatomy/pkg/scene"
)

// State is either empty or holds exactly one mesh with its resolved
// record. The zero value is empty.
type State struct {
	mesh   scene.NodeID
	record anatomy.PartRecord
	active bool
}

// Select replaces the current selection
func (s *State) Select(mesh scene.NodeID, record anatomy.PartRecord) {
	s.mesh = mesh
	s.record = record
	s.active = true
}

// Clear empties the selection
func (s *State) Clear() {
	*s = State{}
}

// Current returns the selected mesh and record
func (s *State) Current() (scene.NodeID, anatomy.PartRecord, bool) {
	if !s.active {
		return scene.NoNode, anatomy.PartRecord{}, false
	}
	return s.mesh, s.record, true
}

// IsEmpty reports whether nothing is selected
func (s *State) IsEmpty() bool {
	return !s.active
}

// Resolve applies the outcome of a pick. A miss, or a hit whose name has
// no record in the store, empties the selection. It returns the record
// when the selection ends up non-empty.
func (s *State) Resolve(reg *scene.Registry, store *anatomy.Store, mesh scene.NodeID, hit bool) (anatomy.PartRecord, bool) {
	if !hit {
		s.Clear()
		return anatomy.PartRecord{}, false
	}

	node, ok := reg.Node(mesh)
	if !ok {
		s.Clear()
		return anatomy.PartRecord{}, false
	}

	record, ok := store.Lookup(anatomy.PartID(node.Name()))
	if !ok {
		s.Clear()
		return anatomy.PartRecord{}, false
	}

	s.Select(mesh, record)
	return record, true
}
