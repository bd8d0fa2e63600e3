package system

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/render"
	"github.com/lixenwraith/vi-voxel/status"
)

// Targeter reports the cell under the crosshair
type Targeter interface {
	Target() (core.Vec3i, bool)
}

// RenderSystem assembles a Scene once per frame and hands it to the drawer
type RenderSystem struct {
	engine.SystemBase
	drawer   render.Drawer
	palette  *data.Palette
	targeter Targeter

	playerPos  *status.String
	frameTime  *status.Float
	scriptErrs *atomic.Int64
}

// NewRenderSystem creates the system; targeter may be nil
func NewRenderSystem(w *engine.World, drawer render.Drawer, palette *data.Palette, targeter Targeter) *RenderSystem {
	return &RenderSystem{
		SystemBase: engine.NewSystemBase(w, NameRender),
		drawer:     drawer,
		palette:    palette,
		targeter:   targeter,
		playerPos:  w.Status.Strings.Get(status.KeyPlayerPos),
		frameTime:  w.Status.Floats.Get(status.KeyFrameTime),
		scriptErrs: w.Status.Ints.Get(status.KeyScriptErrors),
	}
}

func (s *RenderSystem) OnInit() error {
	if rs, ok := s.drawer.(render.Resizer); ok {
		s.RegisterEvent(event.Resize, func(ev event.Event) {
			if p, ok := ev.Payload.(event.ResizePayload); ok {
				rs.Resize(p.Width, p.Height)
			}
		})
	}
	return nil
}

func (s *RenderSystem) OnUpdate(elapsed time.Duration) {
	s.frameTime.Set(float64(elapsed) / float64(time.Millisecond))
	s.drawer.Draw(s.Scene())
}

// Scene snapshots the world for drawing
func (s *RenderSystem) Scene() render.Scene {
	scene := render.Scene{
		Frame:   s.World.Frame(),
		Palette: s.palette,
	}
	if _, vc, ok := worldVoxel(s.Registry); ok {
		scene.Grid = vc.Grid
		if vc.Mesh != nil {
			scene.Faces = vc.Mesh.FaceCount()
		}
	}
	if a, ok := findAvatar(s.Registry); ok {
		scene.Player = a.transform.Position
		scene.Yaw = a.camera.Yaw
		scene.HasPlayer = true
		scene.Selected = a.player.Selected
		s.playerPos.Store(fmt.Sprintf("%.1f,%.1f,%.1f", scene.Player[0], scene.Player[1], scene.Player[2]))
	}
	if s.targeter != nil {
		scene.Target, scene.HasTarget = s.targeter.Target()
	}
	scene.Particles = CollectParticles(s.Registry)
	if n := s.scriptErrs.Load(); n > 0 {
		scene.Status = fmt.Sprintf("script errors %d", n)
	}
	return scene
}
