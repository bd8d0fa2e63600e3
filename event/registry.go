package event

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrUnknownEvent is returned when a channel name has no registered type
	ErrUnknownEvent = eris.New("unknown event")
	// ErrNameTaken is returned when a name is already bound to a different type
	ErrNameTaken = eris.New("event name already registered")
)

var builtinNames = [builtinEnd]string{
	KeyDown:       "keyDown",
	KeyUp:         "keyUp",
	MouseEvent:    "mouseEvent",
	Click:         "click",
	Resize:        "resize",
	VoxelChanged:  "voxelChanged",
	MeshRebuilt:   "meshRebuilt",
	BlockPicked:   "blockPicked",
	SystemStarted: "systemStarted",
	SystemStopped: "systemStopped",
}

// Names maps channel names to event types
// Each Bus owns one; builtin channels are always present
type Names struct {
	byName     map[string]Type
	byType     map[Type]string
	nextCustom Type
}

// NewNames returns a table holding the builtin channels
func NewNames() *Names {
	n := &Names{
		byName:     make(map[string]Type, len(builtinNames)),
		byType:     make(map[Type]string, len(builtinNames)),
		nextCustom: Custom,
	}
	for t := KeyDown; t < builtinEnd; t++ {
		n.byName[builtinNames[t]] = t
		n.byType[t] = builtinNames[t]
	}
	return n
}

// Register binds name to t
// Re-registering the same pair is a no-op
func (n *Names) Register(name string, t Type) error {
	if t == Invalid {
		return eris.Wrapf(ErrUnknownEvent, "register %q with invalid type", name)
	}
	if existing, ok := n.byName[name]; ok {
		if existing == t {
			return nil
		}
		return eris.Wrapf(ErrNameTaken, "%q bound to %s", name, existing)
	}
	n.byName[name] = t
	n.byType[t] = name
	if t >= n.nextCustom {
		n.nextCustom = t + 1
	}
	return nil
}

// Lookup returns the type bound to name
func (n *Names) Lookup(name string) (Type, bool) {
	t, ok := n.byName[name]
	return t, ok
}

// Name returns the channel name of t, or t.String() when unnamed
func (n *Names) Name(t Type) string {
	if name, ok := n.byType[t]; ok {
		return name
	}
	return t.String()
}

// Channel returns the type for name, allocating a custom id on first use
func (n *Names) Channel(name string) Type {
	if t, ok := n.byName[name]; ok {
		return t
	}
	t := n.nextCustom
	n.nextCustom++
	n.byName[name] = t
	n.byType[t] = name
	return t
}
