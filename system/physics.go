package system

import (
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/physics"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// MaxPhysicsStep bounds one frame's simulated time so a stalled frame cannot launch bodies
const MaxPhysicsStep = 100 * time.Millisecond

var bodyTags = []core.Tag{component.TagTransform, component.TagRigidbody}

// worldBinder is implemented by engines that collide against voxels
type worldBinder interface {
	SetWorld(voxel.Source)
}

type solidBinder interface {
	SetSolid(func(uint8) bool)
}

// PhysicsSystem mirrors {Transform, Rigidbody} entities into a physics engine
// Velocity is pushed before the step; position, velocity and grounded are read back after
type PhysicsSystem struct {
	engine.SystemBase
	physics physics.Engine
	palette *data.Palette
	bodies  map[core.Entity]physics.BodyID
	bound   *voxel.Grid
}

func NewPhysicsSystem(w *engine.World, eng physics.Engine, palette *data.Palette) *PhysicsSystem {
	return &PhysicsSystem{
		SystemBase: engine.NewSystemBase(w, NamePhysics),
		physics:    eng,
		palette:    palette,
		bodies:     make(map[core.Entity]physics.BodyID),
	}
}

func (s *PhysicsSystem) OnInit() error {
	if sb, ok := s.physics.(solidBinder); ok && s.palette != nil {
		sb.SetSolid(s.palette.IsSolid)
	}
	return nil
}

// OnClose drops every body so a restart re-registers from components
func (s *PhysicsSystem) OnClose() {
	for e, id := range s.bodies {
		s.physics.RemoveBody(id)
		if rb, err := engine.Get[*component.RigidbodyComponent](s.Registry, e); err == nil {
			rb.Body = 0
		}
	}
	clear(s.bodies)
}

func (s *PhysicsSystem) OnUpdate(elapsed time.Duration) {
	s.bindWorld()
	s.prune()

	var live []core.Entity
	s.Registry.ApplyToEach(bodyTags, func(e core.Entity) {
		rb := engine.MustGet[*component.RigidbodyComponent](s.Registry, e)
		if !rb.IsEnabled() {
			return
		}
		tr := engine.MustGet[*component.TransformComponent](s.Registry, e)
		if id, ok := s.bodies[e]; ok && rb.Body == id {
			s.physics.SetVelocity(id, rb.Velocity)
		} else {
			// A replaced component starts without a body, the old one is dropped
			if ok {
				s.physics.RemoveBody(id)
			}
			rb.Body = s.physics.AddBody(physics.BodySpec{
				Position:     tr.Position,
				Velocity:     rb.Velocity,
				Size:         rb.Size,
				GravityScale: rb.GravityScale,
			})
			s.bodies[e] = rb.Body
		}
		live = append(live, e)
	})

	s.physics.Step(min(elapsed, MaxPhysicsStep))

	for _, e := range live {
		st, ok := s.physics.Body(s.bodies[e])
		if !ok {
			continue
		}
		tr := engine.MustGet[*component.TransformComponent](s.Registry, e)
		rb := engine.MustGet[*component.RigidbodyComponent](s.Registry, e)
		tr.Position = st.Position
		rb.Velocity = st.Velocity
		rb.Grounded = st.Grounded
	}
}

// Teleport moves an entity's transform and, when registered, its body
func (s *PhysicsSystem) Teleport(e core.Entity, pos mgl64.Vec3) error {
	tr, err := engine.Get[*component.TransformComponent](s.Registry, e)
	if err != nil {
		return err
	}
	tr.Position = pos
	if id, ok := s.bodies[e]; ok {
		s.physics.SetPosition(id, pos)
	}
	return nil
}

// BodyCount returns the number of entities mirrored into the engine
func (s *PhysicsSystem) BodyCount() int {
	return len(s.bodies)
}

// bindWorld points the engine at the resident chunk once it exists or is replaced
func (s *PhysicsSystem) bindWorld() {
	wb, ok := s.physics.(worldBinder)
	if !ok {
		return
	}
	_, vc, ok := worldVoxel(s.Registry)
	if !ok || vc.Grid == s.bound {
		return
	}
	wb.SetWorld(vc.Grid)
	s.bound = vc.Grid
}

// prune removes bodies whose entity died, lost its rigidbody, or was disabled
func (s *PhysicsSystem) prune() {
	var gone []core.Entity
	for e := range s.bodies {
		rb, err := engine.Get[*component.RigidbodyComponent](s.Registry, e)
		if err != nil || !rb.IsEnabled() || !s.Registry.Has(e, component.TagTransform) {
			gone = append(gone, e)
		}
	}
	slices.Sort(gone)
	for _, e := range gone {
		s.physics.RemoveBody(s.bodies[e])
		delete(s.bodies, e)
		if rb, err := engine.Get[*component.RigidbodyComponent](s.Registry, e); err == nil {
			rb.Body = 0
		}
	}
}
