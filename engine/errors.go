package engine

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrMissingComponent is returned when an entity lacks the requested tag
	ErrMissingComponent = eris.New("missing component")
	// ErrDuplicateSystem is returned when two systems share a name
	ErrDuplicateSystem = eris.New("duplicate system")
	// ErrUnknownSystem is returned for lifecycle calls on unregistered names
	ErrUnknownSystem = eris.New("unknown system")
	// ErrEntityNotFound is returned for destroyed or never-created entities
	ErrEntityNotFound = eris.New("entity not found")
	// ErrForeignComponent is returned when a component is bound to another entity
	ErrForeignComponent = eris.New("component owned by another entity")
	// ErrMutationDuringIteration is the panic value for structural changes inside ApplyToEach
	ErrMutationDuringIteration = eris.New("registry mutated during iteration")
)
