package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/status"
)

// Block cycling keys
const (
	keyPrevBlock = "q"
	keyNextBlock = "e"
)

// InputSystem applies key and pointer events to the avatar
// Held keys land in PlayerComponent.Keys; pointer motion turns the camera;
// digits and q/e pick the block to place
type InputSystem struct {
	engine.SystemBase
	palette  *data.Palette
	selected *status.String
}

func NewInputSystem(w *engine.World, palette *data.Palette) *InputSystem {
	return &InputSystem{
		SystemBase: engine.NewSystemBase(w, NameInput),
		palette:    palette,
		selected:   w.Status.Strings.Get(status.KeySelectedBlock),
	}
}

func (s *InputSystem) OnInit() error {
	s.RegisterEvent(event.KeyDown, s.handleKeyDown)
	s.RegisterEvent(event.KeyUp, s.handleKeyUp)
	s.RegisterEvent(event.MouseEvent, s.handleMouse)
	return nil
}

func (s *InputSystem) OnUpdate(_ time.Duration) {}

func (s *InputSystem) handleKeyDown(ev event.Event) {
	p, ok := ev.Payload.(event.KeyPayload)
	if !ok {
		return
	}
	a, ok := findAvatar(s.Registry)
	if !ok || !a.player.IsEnabled() {
		return
	}
	a.player.Keys[p.Key] = true

	if next, ok := s.pick(a.player.Selected, p.Key); ok && next != a.player.Selected {
		a.player.Selected = next
		if s.palette != nil {
			if b := s.palette.ByID(next); b != nil {
				s.selected.Store(b.Name)
			}
		}
		s.Log.Debug("block selected", zap.Uint8("id", next))
	}
}

// pick maps a key to a new selection; digits address palette ids directly
func (s *InputSystem) pick(current uint8, key string) (uint8, bool) {
	if s.palette == nil || s.palette.Len() == 0 {
		return current, false
	}
	switch key {
	case keyPrevBlock:
		return s.palette.Next(current, -1), true
	case keyNextBlock:
		return s.palette.Next(current, 1), true
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		id := key[0] - '0'
		if s.palette.ByID(id) != nil {
			return id, true
		}
	}
	return current, false
}

func (s *InputSystem) handleKeyUp(ev event.Event) {
	p, ok := ev.Payload.(event.KeyPayload)
	if !ok {
		return
	}
	if a, ok := findAvatar(s.Registry); ok {
		delete(a.player.Keys, p.Key)
	}
}

func (s *InputSystem) handleMouse(ev event.Event) {
	p, ok := ev.Payload.(event.MousePayload)
	if !ok {
		return
	}
	a, ok := findAvatar(s.Registry)
	if !ok || !a.camera.IsEnabled() {
		return
	}
	a.camera.Rotate(p.MovementX, p.MovementY)
}
