// Package anatomy holds the descriptive metadata for body parts, keyed by
// the mesh names used in the 3D model.
package anatomy

import "sort"

// PartID identifies an anatomical part. It is shared between the model's
// mesh names and the metadata mapping.
type PartID string

// PartRecord is the descriptive metadata shown for a part
type PartRecord struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Action string `json:"action" yaml:"action"`
	Origin string `json:"origin" yaml:"origin"`
}

// Store maps part identifiers to their records. It is filled once by Load
// or NewStore and never mutated afterwards.
type Store struct {
	records map[PartID]PartRecord
}

// NewStore creates a store from a mapping. The mapping is copied.
func NewStore(records map[PartID]PartRecord) *Store {
	copied := make(map[PartID]PartRecord, len(records))
	for id, rec := range records {
		copied[id] = rec
	}
	return &Store{records: copied}
}

// Lookup returns the record for id
func (s *Store) Lookup(id PartID) (PartRecord, bool) {
	if s == nil {
		return PartRecord{}, false
	}
	rec, ok := s.records[id]
	return rec, ok
}

// Len returns the number of records
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// IDs returns all part identifiers in sorted order
func (s *Store) IDs() []PartID {
	if s == nil {
		return nil
	}
	ids := make([]PartID, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
