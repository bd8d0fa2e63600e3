package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-voxel/asset"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/event"
)

type fakeHost struct {
	cells    map[core.Vec3i]uint8
	emitted  []event.CustomPayload
	handlers map[string][]func(event.Event)
}

func newFakeHost() *fakeHost {
	return &fakeHost{cells: make(map[core.Vec3i]uint8), handlers: make(map[string][]func(event.Event))}
}

func (h *fakeHost) Voxel(x, y, z int) uint8 {
	return h.cells[core.Vec3i{X: x, Y: y, Z: z}]
}

func (h *fakeHost) SetVoxel(x, y, z int, v uint8) bool {
	p := core.Vec3i{X: x, Y: y, Z: z}
	if h.cells[p] == v {
		return false
	}
	h.cells[p] = v
	return true
}

func (h *fakeHost) Emit(name string, data any) error {
	if name == "voxelChanged" {
		return errors.New("builtin channel")
	}
	h.emitted = append(h.emitted, event.CustomPayload{Name: name, Data: data})
	return nil
}

func (h *fakeHost) Subscribe(name string, fn func(event.Event)) error {
	h.handlers[name] = append(h.handlers[name], fn)
	return nil
}

func (h *fakeHost) fire(name string, ev event.Event) {
	for _, fn := range h.handlers[name] {
		fn(ev)
	}
}

func TestDefaultScript(t *testing.T) {
	h := newFakeHost()
	e := NewEngine(h, nil, nil)
	defer e.Close()

	require.NoError(t, e.LoadString("default", asset.DefaultScript))
	require.NoError(t, e.CallInit())
	for y := 8; y <= 12; y++ {
		assert.Equal(t, uint8(7), h.Voxel(2, y, 2))
	}
	require.NoError(t, e.CallUpdate(0.016))

	require.Len(t, h.handlers["meshRebuilt"], 1)
	for i := 0; i < 10; i++ {
		h.fire("meshRebuilt", event.Event{Type: event.MeshRebuilt, Payload: event.MeshRebuiltPayload{Owner: 1, Faces: 160}})
	}
	assert.Equal(t, 10.0, e.Global("rebuilds"))
	assert.Zero(t, e.Errors())
}

func TestVoxelAccessAndEmit(t *testing.T) {
	h := newFakeHost()
	h.cells[core.Vec3i{X: 1, Y: 2, Z: 3}] = 4
	e := NewEngine(h, nil, nil)
	defer e.Close()

	require.NoError(t, e.LoadString("t", `
		seen = get_voxel(1, 2, 3)
		changed = set_voxel(0, 0, 0, 9)
		again = set_voxel(0, 0, 0, 9)
		emit("ping", {count = 2, tags = {"a", "b"}})
	`))
	assert.Equal(t, 4.0, e.Global("seen"))
	assert.Equal(t, true, e.Global("changed"))
	assert.Equal(t, false, e.Global("again"))

	require.Len(t, h.emitted, 1)
	assert.Equal(t, "ping", h.emitted[0].Name)
	assert.Equal(t, map[string]any{"count": 2.0, "tags": []any{"a", "b"}}, h.emitted[0].Data)
}

func TestScriptErrors(t *testing.T) {
	h := newFakeHost()
	e := NewEngine(h, nil, nil)
	defer e.Close()

	assert.Error(t, e.LoadString("bad", "this is not lua"))
	assert.Error(t, e.LoadString("range", "set_voxel(0, 0, 0, 300)"))
	assert.Error(t, e.LoadString("builtin", `emit("voxelChanged", 1)`))

	require.NoError(t, e.LoadString("hook", `function on_update(dt) error("boom") end`))
	assert.Error(t, e.CallUpdate(0.1))
	assert.Equal(t, 1, e.Errors())

	require.NoError(t, e.LoadString("cb", `
clicks = 0
on("click", function(ev)
  clicks = clicks + 1
  error("bad click")
end)`))
	assert.NoError(t, e.TakeHandlerErr())

	click := event.Event{Type: event.Click, Payload: event.ClickPayload{Button: 1}}
	h.fire("click", click)
	h.fire("click", click)
	assert.Equal(t, 2, e.Errors())
	assert.Equal(t, 1.0, e.Global("clicks"), "callbacks are held while a failure is pending")

	err := e.TakeHandlerErr()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lua on click")
	assert.Contains(t, err.Error(), "bad click")
	assert.NoError(t, e.TakeHandlerErr(), "taking clears the failure")

	err = e.LoadString("syntax", "local = 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load syntax")
}

func TestMissingHooksAreFine(t *testing.T) {
	e := NewEngine(newFakeHost(), nil, nil)
	defer e.Close()
	assert.NoError(t, e.CallInit())
	assert.NoError(t, e.CallUpdate(1))
}

func TestEventTableFields(t *testing.T) {
	h := newFakeHost()
	e := NewEngine(h, nil, nil)
	defer e.Close()

	require.NoError(t, e.LoadString("t", `
		on("blockPicked", function(ev)
			picked = {ev.type, ev.x, ev.y, ev.z, ev.ny, ev.voxel, ev.button, ev.frame}
		end)
		on("custom", function(ev) custom = ev.data.n end)
	`))
	h.fire("blockPicked", event.Event{
		Type:  event.BlockPicked,
		Frame: 42,
		Payload: event.BlockPickedPayload{
			Cell:   core.Vec3i{X: 1, Y: 2, Z: 3},
			Normal: core.Vec3i{Y: 1},
			Voxel:  5,
			Button: 3,
		},
	})
	assert.Equal(t, []any{"blockPicked", 1.0, 2.0, 3.0, 1.0, 5.0, 3.0, 42.0}, e.Global("picked"))

	h.fire("custom", event.Event{Type: event.Custom, Payload: event.CustomPayload{Name: "custom", Data: map[string]any{"n": 7}}})
	assert.Equal(t, 7.0, e.Global("custom"))
}

func TestLoadDirAndFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte("order = 'a'"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte("order = order .. 'b'"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	e := NewEngine(newFakeHost(), nil, nil)
	defer e.Close()
	require.NoError(t, e.LoadDir(dir))
	assert.Equal(t, "ab", e.Global("order"))

	assert.NoError(t, e.LoadDir(filepath.Join(dir, "missing")))
	assert.Error(t, e.LoadFile(filepath.Join(dir, "missing.lua")))
}
