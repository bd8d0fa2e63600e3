package scripting

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/event"
)

// Host is the slice of the world a script can reach
type Host interface {
	Voxel(x, y, z int) uint8
	SetVoxel(x, y, z int, v uint8) bool
	// Emit publishes data on a custom channel
	Emit(name string, data any) error
	// Subscribe routes events of the named channel to fn until the host drops the script
	Subscribe(name string, fn func(event.Event)) error
}

// Engine wraps one gopher-lua VM bound to a Host
// Single-goroutine access only (frame thread)
type Engine struct {
	vm     *lua.LState
	host   Host
	log    *zap.Logger
	names  *event.Names
	errors int
	// first on() callback failure not yet taken by the host
	failed error
}

// NewEngine creates a VM with the world API installed
// names resolves event type names for callback payloads, nil uses the builtin table
func NewEngine(host Host, names *event.Names, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if names == nil {
		names = event.NewNames()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, host: host, log: log, names: names}
	vm.SetGlobal("get_voxel", vm.NewFunction(e.luaGetVoxel))
	vm.SetGlobal("set_voxel", vm.NewFunction(e.luaSetVoxel))
	vm.SetGlobal("emit", vm.NewFunction(e.luaEmit))
	vm.SetGlobal("on", vm.NewFunction(e.luaOn))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// LoadFile runs a script file, defining its hooks
func (e *Engine) LoadFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return eris.Wrapf(err, "load %s", path)
	}
	e.log.Debug("loaded lua script", zap.String("file", path))
	return nil
}

// LoadString runs inline source under a chunk name used in error messages
func (e *Engine) LoadString(name, src string) error {
	fn, err := e.vm.Load(strings.NewReader(src), name)
	if err != nil {
		return eris.Wrapf(err, "load %s", name)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return eris.Wrapf(err, "run %s", name)
	}
	e.log.Debug("loaded lua chunk", zap.String("name", name))
	return nil
}

// LoadDir runs every .lua file in dir in name order; a missing dir is not an error
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "read %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		if err := e.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// CallInit invokes the global on_init hook if the script defines one
func (e *Engine) CallInit() error {
	return e.callHook("on_init")
}

// CallUpdate invokes the global on_update hook with the frame delta in seconds
func (e *Engine) CallUpdate(dt float64) error {
	return e.callHook("on_update", lua.LNumber(dt))
}

func (e *Engine) callHook(name string, args ...lua.LValue) error {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		e.errors++
		return eris.Wrapf(err, "lua %s", name)
	}
	return nil
}

// Global reads a global as a Go value, mostly for inspection in tests and tooling
func (e *Engine) Global(name string) any {
	return fromLua(e.vm.GetGlobal(name))
}

// TakeHandlerErr returns the first on() callback failure since the last call and clears it
// Callbacks are skipped while a failure is pending
func (e *Engine) TakeHandlerErr() error {
	err := e.failed
	e.failed = nil
	return err
}

// Errors counts failed hook and callback invocations
func (e *Engine) Errors() int {
	return e.errors
}

func (e *Engine) Close() {
	e.vm.Close()
}

// get_voxel(x, y, z) -> id
func (e *Engine) luaGetVoxel(L *lua.LState) int {
	x, y, z := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	L.Push(lua.LNumber(e.host.Voxel(x, y, z)))
	return 1
}

// set_voxel(x, y, z, id) -> changed
func (e *Engine) luaSetVoxel(L *lua.LState) int {
	x, y, z := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	v := L.CheckInt(4)
	if v < 0 || v > 255 {
		L.ArgError(4, "voxel id must be in 0..255")
		return 0
	}
	L.Push(lua.LBool(e.host.SetVoxel(x, y, z, uint8(v))))
	return 1
}

// emit(name, data)
func (e *Engine) luaEmit(L *lua.LState) int {
	name := L.CheckString(1)
	data := fromLua(L.Get(2))
	if err := e.host.Emit(name, data); err != nil {
		L.RaiseError("emit %s: %s", name, err.Error())
	}
	return 0
}

// on(name, fn)
func (e *Engine) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	err := e.host.Subscribe(name, func(ev event.Event) {
		e.dispatch(name, fn, ev)
	})
	if err != nil {
		L.RaiseError("on %s: %s", name, err.Error())
	}
	return 0
}

// log(msg...)
func (e *Engine) luaLog(L *lua.LState) int {
	n := L.GetTop()
	msg := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			msg += " "
		}
		msg += L.ToStringMeta(L.Get(i)).String()
	}
	e.log.Info(msg, zap.String("source", "lua"))
	return 0
}

func (e *Engine) dispatch(name string, fn *lua.LFunction, ev event.Event) {
	if e.failed != nil {
		return
	}
	t := e.eventTable(ev)
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, t); err != nil {
		e.errors++
		e.failed = eris.Wrapf(err, "lua on %s", name)
		e.log.Error("lua event handler error", zap.String("event", name), zap.Error(err))
	}
}
