package engine

import (
	"slices"

	"github.com/rotisserie/eris"

	"github.com/lixenwraith/vi-voxel/core"
)

type record struct {
	name string
	mask Mask
}

// Registry owns entity identities and the per-tag component stores
// Single-threaded: the frame thread is the only reader and writer
type Registry struct {
	next      core.Entity
	order     []core.Entity
	records   map[core.Entity]*record
	byName    map[string][]core.Entity
	tagIDs    map[core.Tag]uint8
	stores    []*Store
	pending   []core.Entity
	iterDepth int
}

// NewRegistry creates an empty registry; entity ids start at 1
func NewRegistry() *Registry {
	return &Registry{
		next:    1,
		records: make(map[core.Entity]*record),
		byName:  make(map[string][]core.Entity),
		tagIDs:  make(map[core.Tag]uint8),
	}
}

// guard panics when a structural change happens inside ApplyToEach
func (r *Registry) guard(op string) {
	if r.iterDepth > 0 {
		panic(eris.Wrapf(ErrMutationDuringIteration, "%s inside ApplyToEach", op))
	}
}

// tagID returns the id for tag, allocating on first sight
func (r *Registry) tagID(tag core.Tag) uint8 {
	if id, ok := r.tagIDs[tag]; ok {
		return id
	}
	if len(r.stores) >= MaxTags {
		panic(eris.Errorf("tag %q exceeds %d registered tags", tag, MaxTags))
	}
	id := uint8(len(r.stores))
	r.tagIDs[tag] = id
	r.stores = append(r.stores, newStore(tag, id))
	return id
}

// Store returns the slab for tag, nil if the tag was never assigned
func (r *Registry) Store(tag core.Tag) *Store {
	id, ok := r.tagIDs[tag]
	if !ok {
		return nil
	}
	return r.stores[id]
}

// Create allocates a fresh entity; names need not be unique
func (r *Registry) Create(name string) core.Entity {
	r.guard("Create")
	e := r.next
	r.next++
	r.records[e] = &record{name: name}
	r.order = append(r.order, e)
	r.byName[name] = append(r.byName[name], e)
	return e
}

// Destroy removes e and all of its components, reports whether it was alive
func (r *Registry) Destroy(e core.Entity) bool {
	r.guard("Destroy")
	return r.destroy(e)
}

func (r *Registry) destroy(e core.Entity) bool {
	rec, ok := r.records[e]
	if !ok {
		return false
	}
	for _, s := range r.stores {
		if rec.mask.Has(s.id) {
			s.remove(e)
		}
	}
	delete(r.records, e)
	if i := slices.Index(r.order, e); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	named := r.byName[rec.name]
	if i := slices.Index(named, e); i >= 0 {
		named = slices.Delete(named, i, i+1)
	}
	if len(named) == 0 {
		delete(r.byName, rec.name)
	} else {
		r.byName[rec.name] = named
	}
	return true
}

// DeferDestroy queues e for removal at the next FlushDestroyed
// Safe inside ApplyToEach
func (r *Registry) DeferDestroy(e core.Entity) {
	r.pending = append(r.pending, e)
}

// FlushDestroyed destroys queued entities, returns how many were alive
func (r *Registry) FlushDestroyed() int {
	if len(r.pending) == 0 {
		return 0
	}
	r.guard("FlushDestroyed")
	n := 0
	for _, e := range r.pending {
		if r.destroy(e) {
			n++
		}
	}
	r.pending = r.pending[:0]
	return n
}

// Alive reports whether e exists
func (r *Registry) Alive(e core.Entity) bool {
	_, ok := r.records[e]
	return ok
}

// Name returns the creation name of e
func (r *Registry) Name(e core.Entity) (string, bool) {
	rec, ok := r.records[e]
	if !ok {
		return "", false
	}
	return rec.name, true
}

// Count returns the number of live entities
func (r *Registry) Count() int {
	return len(r.order)
}

// Entities returns live entities in insertion order
func (r *Registry) Entities() []core.Entity {
	return slices.Clone(r.order)
}

// GetByName returns every live entity created with name, insertion order
// Returns an empty non-nil slice when none match
func (r *Registry) GetByName(name string) []core.Entity {
	named := r.byName[name]
	result := make([]core.Entity, len(named))
	copy(result, named)
	return result
}

// Mask returns the tag set of e
func (r *Registry) Mask(e core.Entity) (Mask, bool) {
	rec, ok := r.records[e]
	if !ok {
		return Mask{}, false
	}
	return rec.mask, true
}

// Assign stores c on its owning entity, replacing any component with the same tag
func (r *Registry) Assign(c core.Component) error {
	return r.AssignTo(c.Entity(), c)
}

// AssignTo stores c on e; c must have been constructed for e
// Overwriting an existing tag is allowed inside ApplyToEach, adding a new one is not
func (r *Registry) AssignTo(e core.Entity, c core.Component) error {
	if c == nil {
		return eris.Wrapf(ErrMissingComponent, "assign nil component to %s", e)
	}
	if owner := c.Entity(); owner != e {
		return eris.Wrapf(ErrForeignComponent, "%s owned by %s, assigned to %s", c.Tag(), owner, e)
	}
	rec, ok := r.records[e]
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "assign %s to %s", c.Tag(), e)
	}
	id, known := r.tagIDs[c.Tag()]
	if !known || !rec.mask.Has(id) {
		r.guard("Assign")
		id = r.tagID(c.Tag())
		rec.mask.set(id)
	}
	r.stores[id].set(e, c)
	return nil
}

// Component returns the component of e under tag
func (r *Registry) Component(e core.Entity, tag core.Tag) (core.Component, error) {
	if _, ok := r.records[e]; !ok {
		return nil, eris.Wrapf(ErrEntityNotFound, "get %s from %s", tag, e)
	}
	s := r.Store(tag)
	if s == nil {
		return nil, eris.Wrapf(ErrMissingComponent, "%s has no %s", e, tag)
	}
	c, ok := s.get(e)
	if !ok {
		return nil, eris.Wrapf(ErrMissingComponent, "%s has no %s", e, tag)
	}
	return c, nil
}

// Has reports whether e holds tag
func (r *Registry) Has(e core.Entity, tag core.Tag) bool {
	rec, ok := r.records[e]
	if !ok {
		return false
	}
	id, ok := r.tagIDs[tag]
	return ok && rec.mask.Has(id)
}

// Remove detaches tag from e, reports whether it was attached
func (r *Registry) Remove(e core.Entity, tag core.Tag) bool {
	if !r.Has(e, tag) {
		return false
	}
	r.guard("Remove")
	id := r.tagIDs[tag]
	r.records[e].mask.unset(id)
	return r.stores[id].remove(e)
}

// MaskOf builds the set for tags; ok is false when some tag was never assigned,
// in which case no entity can match
func (r *Registry) MaskOf(tags ...core.Tag) (Mask, bool) {
	var m Mask
	for _, tag := range tags {
		id, ok := r.tagIDs[tag]
		if !ok {
			return Mask{}, false
		}
		m.set(id)
	}
	return m, true
}

// ApplyToEach calls fn for every entity holding all tags, insertion order
// An empty tag list matches every entity. fn must not create, destroy, or
// change the tag set of any entity; use DeferDestroy. Violations panic
// with ErrMutationDuringIteration
func (r *Registry) ApplyToEach(tags []core.Tag, fn func(core.Entity)) {
	m, ok := r.MaskOf(tags...)
	if !ok {
		return
	}
	r.iterDepth++
	defer func() { r.iterDepth-- }()

	for _, e := range r.order {
		if r.records[e].mask.Contains(m) {
			fn(e)
		}
	}
}

// Get returns the component of type T on e
// T must be a pointer component whose Tag method ignores the receiver
func Get[T core.Component](r *Registry, e core.Entity) (T, error) {
	var zero T
	c, err := r.Component(e, zero.Tag())
	if err != nil {
		return zero, err
	}
	typed, ok := c.(T)
	if !ok {
		return zero, eris.Wrapf(ErrMissingComponent, "%s: %s holds %T", e, zero.Tag(), c)
	}
	return typed, nil
}

// MustGet is Get for call sites where absence is a wiring bug
func MustGet[T core.Component](r *Registry, e core.Entity) T {
	c, err := Get[T](r, e)
	if err != nil {
		panic(err)
	}
	return c
}

// TagOf returns the tag of component type T
func TagOf[T core.Component]() core.Tag {
	var zero T
	return zero.Tag()
}
