package engine

import (
	"slices"
	"sort"

	"github.com/lixenwraith/vi-voxel/core"
)

// QueryBuilder collects entities holding every listed tag
// Stores are intersected smallest first; results come back in insertion order
//
// Example:
//
//	bodies := registry.Query().
//	    With(component.TagTransform, component.TagRigidbody).
//	    Execute()
type QueryBuilder struct {
	registry *Registry
	tags     []core.Tag
	executed bool
	results  []core.Entity
}

// Query starts a capability-set query
func (r *Registry) Query() *QueryBuilder {
	return &QueryBuilder{
		registry: r,
		tags:     make([]core.Tag, 0, 4),
	}
}

// With adds required tags
// Panics if called after Execute
func (qb *QueryBuilder) With(tags ...core.Tag) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.tags = append(qb.tags, tags...)
	return qb
}

// Execute returns matching entities; repeated calls return the cached result
// An empty query matches nothing
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true
	qb.results = make([]core.Entity, 0)

	if len(qb.tags) == 0 {
		return qb.results
	}

	stores := make([]*Store, 0, len(qb.tags))
	for _, tag := range qb.tags {
		s := qb.registry.Store(tag)
		if s == nil {
			return qb.results
		}
		stores = append(stores, s)
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Count() < stores[j].Count()
	})

	candidates := stores[0].All()
	for _, s := range stores[1:] {
		filtered := candidates[:0]
		for _, e := range candidates {
			if s.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}

	// Ids are allocated monotonically, so id order is insertion order
	slices.Sort(candidates)
	qb.results = candidates
	return qb.results
}

// First returns the earliest matching entity
func (qb *QueryBuilder) First() (core.Entity, bool) {
	results := qb.Execute()
	if len(results) == 0 {
		return core.None, false
	}
	return results[0], true
}
