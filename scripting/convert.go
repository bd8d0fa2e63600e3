package scripting

import (
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/event"
)

// eventTable flattens an event into the table handed to on() callbacks
// Every table carries type and frame; payload fields use snake_case keys
func (e *Engine) eventTable(ev event.Event) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("type", lua.LString(e.names.Name(ev.Type)))
	t.RawSetString("frame", lua.LNumber(ev.Frame))

	switch p := ev.Payload.(type) {
	case event.KeyPayload:
		t.RawSetString("key", lua.LString(p.Key))
	case event.MousePayload:
		t.RawSetString("dx", lua.LNumber(p.MovementX))
		t.RawSetString("dy", lua.LNumber(p.MovementY))
		t.RawSetString("x", lua.LNumber(p.X))
		t.RawSetString("y", lua.LNumber(p.Y))
	case event.ClickPayload:
		t.RawSetString("button", lua.LNumber(p.Button))
		t.RawSetString("x", lua.LNumber(p.X))
		t.RawSetString("y", lua.LNumber(p.Y))
	case event.ResizePayload:
		t.RawSetString("width", lua.LNumber(p.Width))
		t.RawSetString("height", lua.LNumber(p.Height))
	case event.VoxelChangedPayload:
		setCell(t, "", p.Pos)
		t.RawSetString("old", lua.LNumber(p.Old))
		t.RawSetString("new", lua.LNumber(p.New))
	case event.MeshRebuiltPayload:
		t.RawSetString("owner", lua.LNumber(p.Owner))
		t.RawSetString("faces", lua.LNumber(p.Faces))
	case event.BlockPickedPayload:
		setCell(t, "", p.Cell)
		setCell(t, "n", p.Normal)
		t.RawSetString("voxel", lua.LNumber(p.Voxel))
		t.RawSetString("button", lua.LNumber(p.Button))
	case event.SystemPayload:
		t.RawSetString("name", lua.LString(p.Name))
	case event.CustomPayload:
		t.RawSetString("name", lua.LString(p.Name))
		t.RawSetString("data", toLua(e.vm, p.Data))
	}
	return t
}

func setCell(t *lua.LTable, prefix string, v core.Vec3i) {
	t.RawSetString(prefix+"x", lua.LNumber(v.X))
	t.RawSetString(prefix+"y", lua.LNumber(v.Y))
	t.RawSetString(prefix+"z", lua.LNumber(v.Z))
}

// toLua converts plain Go data into Lua values; unsupported types become nil
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []any:
		t := L.NewTable()
		for _, item := range v {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			t.RawSetString(k, toLua(L, v[k]))
		}
		return t
	default:
		return lua.LNil
	}
}

// fromLua converts a Lua value into plain Go data
// A table with only a 1..n sequence becomes []any, any other table map[string]any
func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case *lua.LTable:
		n := v.MaxN()
		if n > 0 && n == v.Len() && countKeys(v) == n {
			out := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, fromLua(v.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			out[k.String()] = fromLua(val)
		})
		return out
	default:
		return nil
	}
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(lua.LValue, lua.LValue) { n++ })
	return n
}
