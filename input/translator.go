package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-voxel/event"
)

// DefaultMouseScale converts one terminal cell of pointer travel into movement units
const DefaultMouseScale = 20.0

// Button numbers carried by event.ClickPayload
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.ButtonPrimary, ButtonLeft},
	{tcell.ButtonMiddle, ButtonMiddle},
	{tcell.ButtonSecondary, ButtonRight},
}

// Translator turns tcell events into world events
// Not safe for concurrent use; owned by the input goroutine
type Translator struct {
	MouseScale float64

	keys    *KeyTracker
	hasPos  bool
	lastX   int
	lastY   int
	buttons tcell.ButtonMask
}

func NewTranslator(hold time.Duration) *Translator {
	return &Translator{
		MouseScale: DefaultMouseScale,
		keys:       NewKeyTracker(hold),
	}
}

// Translate converts ev at now into zero or more events; quit is set for session-ending keys
func (t *Translator) Translate(ev tcell.Event, now time.Time) (out []event.Event, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name, ok := KeyName(ev)
		if !ok {
			return nil, false
		}
		if IsQuit(name) {
			return nil, true
		}
		if t.keys.Press(name, now) {
			out = append(out, event.Event{Type: event.KeyDown, Payload: event.KeyPayload{Key: name}})
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if t.hasPos && (x != t.lastX || y != t.lastY) {
			out = append(out, event.Event{Type: event.MouseEvent, Payload: event.MousePayload{
				MovementX: float64(x-t.lastX) * t.MouseScale,
				MovementY: float64(y-t.lastY) * t.MouseScale,
				X:         x,
				Y:         y,
			}})
		}
		t.hasPos, t.lastX, t.lastY = true, x, y

		pressed := ev.Buttons()
		for _, b := range buttonMap {
			if pressed&b.mask != 0 && t.buttons&b.mask == 0 {
				out = append(out, event.Event{Type: event.Click, Payload: event.ClickPayload{Button: b.button, X: x, Y: y}})
			}
		}
		t.buttons = pressed

	case *tcell.EventResize:
		w, h := ev.Size()
		out = append(out, event.Event{Type: event.Resize, Payload: event.ResizePayload{Width: w, Height: h}})
	}
	return out, false
}

// Expire emits keyUp for keys whose hold window elapsed
func (t *Translator) Expire(now time.Time) []event.Event {
	return keyUps(t.keys.Expire(now))
}

// ReleaseAll emits keyUp for every held key
func (t *Translator) ReleaseAll() []event.Event {
	return keyUps(t.keys.ReleaseAll())
}

func keyUps(keys []string) []event.Event {
	if len(keys) == 0 {
		return nil
	}
	out := make([]event.Event, len(keys))
	for i, k := range keys {
		out[i] = event.Event{Type: event.KeyUp, Payload: event.KeyPayload{Key: k}}
	}
	return out
}
