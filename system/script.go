package system

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/scripting"
	"github.com/lixenwraith/vi-voxel/status"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// ErrBuiltinChannel rejects script emits on engine-owned channels
var ErrBuiltinChannel = eris.New("builtin event channel")

// ScriptSystem runs one Lua VM per enabled Script entity
// A script loads on the first frame it is seen, gets on_init once and on_update every
// frame; its on() subscriptions live until the entity or the system goes away
// A failing script is unloaded and stays down until its Err is cleared; an on() callback
// failure is picked up on the script's next frame
type ScriptSystem struct {
	engine.SystemBase
	running map[core.Entity]*scriptRun
	errors  *atomic.Int64
}

type scriptRun struct {
	engine *scripting.Engine
	owner  string
}

func NewScriptSystem(w *engine.World) *ScriptSystem {
	return &ScriptSystem{
		SystemBase: engine.NewSystemBase(w, NameScript),
		running:    make(map[core.Entity]*scriptRun),
		errors:     w.Status.Ints.Get(status.KeyScriptErrors),
	}
}

func (s *ScriptSystem) OnClose() {
	for _, e := range s.runningEntities() {
		s.unload(e)
	}
}

func (s *ScriptSystem) OnUpdate(elapsed time.Duration) {
	for _, e := range s.runningEntities() {
		sc, err := engine.Get[*component.ScriptComponent](s.Registry, e)
		if err != nil || !sc.IsEnabled() {
			s.unload(e)
			continue
		}
		// Callbacks fired by other systems since the last frame
		if err := s.running[e].engine.TakeHandlerErr(); err != nil {
			s.fail(e, sc, err)
			s.unload(e)
		}
	}

	for _, e := range s.Registry.Query().With(component.TagScript).Execute() {
		sc := engine.MustGet[*component.ScriptComponent](s.Registry, e)
		if !sc.IsEnabled() || sc.Err != "" {
			continue
		}
		run, ok := s.running[e]
		if !ok {
			run = s.load(e, sc)
			if run == nil {
				continue
			}
		}
		err := run.engine.CallUpdate(elapsed.Seconds())
		if err == nil {
			err = run.engine.TakeHandlerErr()
		}
		if err != nil {
			s.fail(e, sc, err)
			s.unload(e)
		}
	}
}

// Running returns the number of loaded scripts
func (s *ScriptSystem) Running() int {
	return len(s.running)
}

func (s *ScriptSystem) load(e core.Entity, sc *component.ScriptComponent) *scriptRun {
	owner := NameScript + ":" + e.String()
	log := s.Log.With(zap.Stringer("entity", e))
	eng := scripting.NewEngine(&scriptHost{sys: s, owner: owner}, s.World.Bus.Names(), log)
	run := &scriptRun{engine: eng, owner: owner}
	s.running[e] = run

	var err error
	if sc.Path != "" {
		err = eng.LoadFile(sc.Path)
	} else {
		err = eng.LoadString(s.chunkName(e), sc.Source)
	}
	if err == nil {
		err = eng.CallInit()
	}
	if err == nil {
		err = eng.TakeHandlerErr()
	}
	if err != nil {
		s.fail(e, sc, err)
		s.unload(e)
		return nil
	}
	log.Info("script loaded", zap.String("path", sc.Path))
	return run
}

func (s *ScriptSystem) chunkName(e core.Entity) string {
	if name, ok := s.Registry.Name(e); ok && name != "" {
		return name
	}
	return e.String()
}

func (s *ScriptSystem) fail(e core.Entity, sc *component.ScriptComponent, err error) {
	sc.Err = err.Error()
	s.errors.Add(1)
	s.Log.Error("script failed", zap.Stringer("entity", e), zap.Error(err))
}

func (s *ScriptSystem) unload(e core.Entity) {
	run, ok := s.running[e]
	if !ok {
		return
	}
	delete(s.running, e)
	s.World.Bus.UnsubscribeOwner(run.owner)
	run.engine.Close()
}

func (s *ScriptSystem) runningEntities() []core.Entity {
	out := make([]core.Entity, 0, len(s.running))
	for e := range s.running {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// scriptHost binds one script to the world
type scriptHost struct {
	sys   *ScriptSystem
	owner string
}

func (h *scriptHost) grid() (*component.VoxelComponent, bool) {
	_, vc, ok := worldVoxel(h.sys.Registry)
	return vc, ok
}

func (h *scriptHost) Voxel(x, y, z int) uint8 {
	vc, ok := h.grid()
	if !ok {
		return voxel.Empty
	}
	return vc.Grid.Voxel(x, y, z)
}

func (h *scriptHost) SetVoxel(x, y, z int, v uint8) bool {
	vc, ok := h.grid()
	if !ok {
		return false
	}
	old, changed := vc.SetVoxel(x, y, z, v)
	if changed {
		h.sys.World.Emit(event.VoxelChanged, event.VoxelChangedPayload{
			Pos: core.Vec3i{X: x, Y: y, Z: z},
			Old: old,
			New: v,
		})
	}
	return changed
}

func (h *scriptHost) Emit(name string, data any) error {
	t := h.sys.World.Bus.Names().Channel(name)
	if !t.IsCustom() {
		return eris.Wrapf(ErrBuiltinChannel, "emit %q", name)
	}
	h.sys.World.Emit(t, event.CustomPayload{Name: name, Data: data})
	return nil
}

func (h *scriptHost) Subscribe(name string, fn func(event.Event)) error {
	t := h.sys.World.Bus.Names().Channel(name)
	h.sys.World.Bus.Subscribe(t, h.owner, event.Listener(fn))
	return nil
}
