package engine

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/event"
)

// SystemBase provides common dependencies for all systems
// Embed in the system struct; systems supply OnUpdate and override hooks as needed
type SystemBase struct {
	World    *World
	Registry *Registry
	Log      *zap.Logger
	name     string
}

// NewSystemBase binds a system name to the world
// Call once in the system constructor
func NewSystemBase(w *World, name string) SystemBase {
	return SystemBase{
		World:    w,
		Registry: w.Registry,
		Log:      w.Log.Named(name),
		name:     name,
	}
}

// Name satisfies System
func (b *SystemBase) Name() string {
	return b.name
}

// RegisterEvent subscribes fn under this system's name
// The subscription is removed when the system stops
func (b *SystemBase) RegisterEvent(t event.Type, fn event.Listener) event.ListenerID {
	return b.World.Bus.Subscribe(t, b.name, fn)
}

// RegisterEventName subscribes fn to a named channel
func (b *SystemBase) RegisterEventName(name string, fn event.Listener) (event.ListenerID, error) {
	t, ok := b.World.Bus.Names().Lookup(name)
	if !ok {
		return 0, eris.Wrapf(event.ErrUnknownEvent, "register %q", name)
	}
	return b.RegisterEvent(t, fn), nil
}

// OnInit is the default no-op hook
func (b *SystemBase) OnInit() error { return nil }

// OnClose is the default no-op hook
func (b *SystemBase) OnClose() {}
