package engine

import (
	"github.com/lixenwraith/vi-voxel/core"
)

// Store is the slab for one component tag
// Sparse set: map for lookup, entity slice for iteration
type Store struct {
	tag        core.Tag
	id         uint8
	components map[core.Entity]core.Component
	entities   []core.Entity
}

func newStore(tag core.Tag, id uint8) *Store {
	return &Store{
		tag:        tag,
		id:         id,
		components: make(map[core.Entity]core.Component),
		entities:   make([]core.Entity, 0, 16),
	}
}

// Tag returns the tag this store indexes
func (s *Store) Tag() core.Tag {
	return s.tag
}

// set inserts or overwrites, reports whether the entity was new to the store
func (s *Store) set(e core.Entity, c core.Component) bool {
	_, exists := s.components[e]
	if !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = c
	return !exists
}

func (s *Store) get(e core.Entity) (core.Component, bool) {
	c, ok := s.components[e]
	return c, ok
}

// remove swap-deletes e, reports whether it was present
func (s *Store) remove(e core.Entity) bool {
	if _, exists := s.components[e]; !exists {
		return false
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			last := len(s.entities) - 1
			s.entities[i] = s.entities[last]
			s.entities = s.entities[:last]
			break
		}
	}
	return true
}

// Has checks whether e holds this tag
func (s *Store) Has(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Count returns the number of entities holding this tag
func (s *Store) Count() int {
	return len(s.entities)
}

// All returns a copy of the holders in store order
func (s *Store) All() []core.Entity {
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

func (s *Store) clear() {
	s.components = make(map[core.Entity]core.Component)
	s.entities = s.entities[:0]
}
