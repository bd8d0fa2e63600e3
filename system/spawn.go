package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
)

// PlayerSize is the avatar collision box: width, height, depth in cells
var PlayerSize = mgl64.Vec3{0.6, 1.8, 0.6}

// PlayerTuning overrides the avatar defaults; zero fields keep them
type PlayerTuning struct {
	Speed           float64
	JumpSpeed       float64
	Reach           float64
	EyeHeight       float64
	LookSensitivity float64
}

// SpawnPlayer creates the controllable avatar at pos
func SpawnPlayer(r *engine.Registry, pos mgl64.Vec3, tuning PlayerTuning) (core.Entity, error) {
	e := r.Create(EntityPlayer)

	p := component.NewPlayer(e)
	setIfPositive(&p.Speed, tuning.Speed)
	setIfPositive(&p.JumpSpeed, tuning.JumpSpeed)
	setIfPositive(&p.Reach, tuning.Reach)
	setIfPositive(&p.EyeHeight, tuning.EyeHeight)

	cam := component.NewCamera(e)
	setIfPositive(&cam.Sensitivity, tuning.LookSensitivity)

	for _, c := range []core.Component{
		component.NewTransform(e, pos),
		component.NewRigidbody(e, PlayerSize),
		p,
		cam,
	} {
		if err := r.Assign(c); err != nil {
			r.Destroy(e)
			return core.None, err
		}
	}
	return e, nil
}

// SpawnFountain creates a particle emitter entity at pos
func SpawnFountain(r *engine.Registry, pos mgl64.Vec3, rate float64, lifetime time.Duration) (core.Entity, error) {
	e := r.Create("fountain")
	for _, c := range []core.Component{
		component.NewTransform(e, pos),
		component.NewEmitter(e, rate, lifetime),
	} {
		if err := r.Assign(c); err != nil {
			r.Destroy(e)
			return core.None, err
		}
	}
	return e, nil
}

func setIfPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
