package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/core"
)

// Particle is one emitted point
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Age      time.Duration
}

// EmitterComponent spawns particles at its entity's transform
// A disabled emitter keeps its tag but is skipped by the emitter system
type EmitterComponent struct {
	core.ComponentBase
	Rate      float64 // Particles per second
	Lifetime  time.Duration
	Max       int
	Velocity  mgl64.Vec3
	Spread    float64
	Particles []Particle

	// Fractional spawn carry between frames
	Accumulator float64
	Spawned     uint64
}

func NewEmitter(e core.Entity, rate float64, lifetime time.Duration) *EmitterComponent {
	return &EmitterComponent{
		ComponentBase: core.NewComponentBase(e),
		Rate:          rate,
		Lifetime:      lifetime,
		Max:           256,
		Velocity:      mgl64.Vec3{0, 1, 0},
		Spread:        0.5,
	}
}

func (*EmitterComponent) Tag() core.Tag { return TagEmitter }
