package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/gen"
	"github.com/lixenwraith/vi-voxel/physics"
)

// ParticleGravity pulls particles down, gentler than body gravity
const ParticleGravity = -4.0

var emitterTags = []core.Tag{component.TagEmitter, component.TagTransform}

// EmitterSystem spawns and ages particles for enabled emitters
// Disabled emitters keep their particles frozen
type EmitterSystem struct {
	engine.SystemBase
	seed uint32
}

func NewEmitterSystem(w *engine.World, seed uint32) *EmitterSystem {
	return &EmitterSystem{
		SystemBase: engine.NewSystemBase(w, NameEmitter),
		seed:       seed,
	}
}

func (s *EmitterSystem) OnUpdate(elapsed time.Duration) {
	dt := elapsed.Seconds()
	if dt <= 0 {
		return
	}
	s.Registry.ApplyToEach(emitterTags, func(e core.Entity) {
		em := engine.MustGet[*component.EmitterComponent](s.Registry, e)
		if !em.IsEnabled() {
			return
		}
		origin := engine.MustGet[*component.TransformComponent](s.Registry, e).Position
		s.age(em, elapsed, dt)
		s.spawn(e, em, origin, dt)
	})
}

func (s *EmitterSystem) age(em *component.EmitterComponent, elapsed time.Duration, dt float64) {
	alive := em.Particles[:0]
	for _, p := range em.Particles {
		p.Age += elapsed
		if em.Lifetime > 0 && p.Age >= em.Lifetime {
			continue
		}
		physics.Integrate(&p.Position, &p.Velocity, mgl64.Vec3{0, ParticleGravity, 0}, dt)
		alive = append(alive, p)
	}
	em.Particles = alive
}

func (s *EmitterSystem) spawn(e core.Entity, em *component.EmitterComponent, origin mgl64.Vec3, dt float64) {
	em.Accumulator += em.Rate * dt
	for em.Accumulator >= 1 {
		em.Accumulator--
		if len(em.Particles) >= em.Max {
			continue
		}
		em.Particles = append(em.Particles, component.Particle{
			Position: origin,
			Velocity: em.Velocity.Add(s.jitter(e, em.Spawned).Mul(em.Spread)),
		})
		em.Spawned++
	}
}

// jitter returns a deterministic offset in [-1, 1) per axis for the n-th particle
func (s *EmitterSystem) jitter(e core.Entity, n uint64) mgl64.Vec3 {
	h := gen.Hash2(s.seed, int32(e), int32(n))
	var v mgl64.Vec3
	for i := range v {
		h = gen.Hash32(h + uint32(i))
		v[i] = float64(h>>8)/float64(1<<23) - 1
	}
	return v
}

// Particles collects live particle positions of all enabled emitters
func (s *EmitterSystem) Particles() []mgl64.Vec3 {
	return CollectParticles(s.Registry)
}

// CollectParticles gathers particle positions in emitter order
func CollectParticles(r *engine.Registry) []mgl64.Vec3 {
	var out []mgl64.Vec3
	r.ApplyToEach(emitterTags, func(e core.Entity) {
		em := engine.MustGet[*component.EmitterComponent](r, e)
		if !em.IsEnabled() {
			return
		}
		for _, p := range em.Particles {
			out = append(out, p.Position)
		}
	})
	return out
}
