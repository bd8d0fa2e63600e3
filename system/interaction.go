package system

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/input"
	"github.com/lixenwraith/vi-voxel/status"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// InteractionSystem removes and places blocks along the view ray
// Primary click removes the hit cell, secondary click places the selected block
// on the face-adjacent cell; every pick emits blockPicked, every write voxelChanged
type InteractionSystem struct {
	engine.SystemBase

	target    core.Vec3i
	hasTarget bool

	casts *atomic.Int64
	hits  *atomic.Int64
}

func NewInteractionSystem(w *engine.World) *InteractionSystem {
	return &InteractionSystem{
		SystemBase: engine.NewSystemBase(w, NameInteraction),
		casts:      w.Status.Ints.Get(status.KeyRaycasts),
		hits:       w.Status.Ints.Get(status.KeyRaycastHits),
	}
}

func (s *InteractionSystem) OnInit() error {
	s.RegisterEvent(event.Click, s.handleClick)
	return nil
}

// OnUpdate refreshes the cell under the crosshair
func (s *InteractionSystem) OnUpdate(_ time.Duration) {
	hit, ok := s.cast()
	s.target, s.hasTarget = hit.Cell, ok
}

// Target returns the cell under the crosshair as of the last update
func (s *InteractionSystem) Target() (core.Vec3i, bool) {
	return s.target, s.hasTarget
}

// cast raycasts from the avatar eye along the look direction
func (s *InteractionSystem) cast() (voxel.Hit, bool) {
	a, ok := findAvatar(s.Registry)
	if !ok {
		return voxel.Hit{}, false
	}
	_, vc, ok := worldVoxel(s.Registry)
	if !ok {
		return voxel.Hit{}, false
	}
	eye := a.transform.Position.Add(mgl64.Vec3{0, a.player.EyeHeight, 0})
	s.casts.Add(1)
	hit, ok := voxel.RaycastDir(vc.Grid, eye, a.camera.Look(), a.player.Reach)
	if ok {
		s.hits.Add(1)
	}
	return hit, ok
}

func (s *InteractionSystem) handleClick(ev event.Event) {
	p, ok := ev.Payload.(event.ClickPayload)
	if !ok || (p.Button != input.ButtonLeft && p.Button != input.ButtonRight) {
		return
	}
	a, ok := findAvatar(s.Registry)
	if !ok || !a.player.IsEnabled() {
		return
	}
	_, vc, ok := worldVoxel(s.Registry)
	if !ok {
		return
	}
	hit, ok := s.cast()
	if !ok {
		return
	}
	normal := hit.Adjacent().Add(hit.Cell.Neg())
	s.World.Emit(event.BlockPicked, event.BlockPickedPayload{
		Cell:   hit.Cell,
		Normal: normal,
		Voxel:  hit.Voxel,
		Button: p.Button,
	})

	switch p.Button {
	case input.ButtonLeft:
		s.write(vc, hit.Cell, voxel.Empty)

	case input.ButtonRight:
		// A ray starting inside a block has no face to build on
		if normal.IsZero() {
			return
		}
		cell := hit.Adjacent()
		if s.occupied(cell) {
			s.Log.Debug("placement blocked by body", zap.Int("x", cell.X), zap.Int("y", cell.Y), zap.Int("z", cell.Z))
			return
		}
		s.write(vc, cell, a.player.Selected)
	}
}

func (s *InteractionSystem) write(vc *component.VoxelComponent, cell core.Vec3i, v uint8) {
	old, changed := vc.SetVoxel(cell.X, cell.Y, cell.Z, v)
	if !changed {
		return
	}
	s.World.Emit(event.VoxelChanged, event.VoxelChangedPayload{Pos: cell, Old: old, New: v})
}

// occupied reports whether any enabled rigidbody overlaps cell
func (s *InteractionSystem) occupied(cell core.Vec3i) bool {
	lo := mgl64.Vec3{float64(cell.X), float64(cell.Y), float64(cell.Z)}
	hi := lo.Add(mgl64.Vec3{1, 1, 1})
	blocked := false
	s.Registry.ApplyToEach(bodyTags, func(e core.Entity) {
		rb := engine.MustGet[*component.RigidbodyComponent](s.Registry, e)
		if blocked || !rb.IsEnabled() {
			return
		}
		p := engine.MustGet[*component.TransformComponent](s.Registry, e).Position
		blo := mgl64.Vec3{p[0] - rb.Size[0]/2, p[1], p[2] - rb.Size[2]/2}
		bhi := mgl64.Vec3{p[0] + rb.Size[0]/2, p[1] + rb.Size[1], p[2] + rb.Size[2]/2}
		blocked = blo[0] < hi[0] && bhi[0] > lo[0] &&
			blo[1] < hi[1] && bhi[1] > lo[1] &&
			blo[2] < hi[2] && bhi[2] > lo[2]
	})
	return blocked
}
