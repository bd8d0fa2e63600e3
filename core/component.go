package core

// Tag names a component capability, used as storage key and query filter
type Tag string

// Component is the capability every attachable component implements
// Tag must not depend on receiver state: registries resolve tags from zero values
type Component interface {
	Tag() Tag
	Entity() Entity
	Enable()
	Disable()
	IsEnabled() bool
}

// ComponentBase carries the owner back-reference and the enabled flag
// Embed by value; the owner is fixed at construction
type ComponentBase struct {
	owner    Entity
	disabled bool
}

// NewComponentBase binds a component to its owning entity
func NewComponentBase(owner Entity) ComponentBase {
	return ComponentBase{owner: owner}
}

// Entity returns the owning entity
func (b *ComponentBase) Entity() Entity {
	return b.owner
}

// Enable marks the component active
func (b *ComponentBase) Enable() {
	b.disabled = false
}

// Disable marks the component inactive, tag queries still match it
func (b *ComponentBase) Disable() {
	b.disabled = true
}

// IsEnabled reports the flag, components start enabled
func (b *ComponentBase) IsEnabled() bool {
	return !b.disabled
}
