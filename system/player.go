package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/input"
	"github.com/lixenwraith/vi-voxel/physics"
	"github.com/lixenwraith/vi-voxel/vmath"
)

// Movement keys
const (
	keyForward = "w"
	keyBack    = "s"
	keyLeft    = "a"
	keyRight   = "d"
	keyJump    = input.KeySpace
)

var playerTags = []core.Tag{component.TagPlayer, component.TagRigidbody, component.TagCamera}

// PlayerSystem turns held keys into rigidbody velocity relative to the camera heading
type PlayerSystem struct {
	engine.SystemBase
}

func NewPlayerSystem(w *engine.World) *PlayerSystem {
	return &PlayerSystem{SystemBase: engine.NewSystemBase(w, NamePlayer)}
}

func (s *PlayerSystem) OnUpdate(_ time.Duration) {
	s.Registry.ApplyToEach(playerTags, func(e core.Entity) {
		p := engine.MustGet[*component.PlayerComponent](s.Registry, e)
		if !p.IsEnabled() {
			return
		}
		rb := engine.MustGet[*component.RigidbodyComponent](s.Registry, e)
		cam := engine.MustGet[*component.CameraComponent](s.Registry, e)

		wish := cam.Forward().Mul(axis(p, keyForward, keyBack)).
			Add(cam.Right().Mul(axis(p, keyRight, keyLeft)))
		wish = vmath.SafeNormalize(wish).Mul(p.Speed)

		rb.Velocity[0], rb.Velocity[2] = wish[0], wish[2]
		physics.CapHorizontal(&rb.Velocity, p.Speed)

		if p.Pressed(keyJump) && rb.Grounded {
			physics.ApplyImpulse(&rb.Velocity, mgl64.Vec3{0, p.JumpSpeed - rb.Velocity[1], 0})
			rb.Grounded = false
		}
	})
}

// axis returns +1, -1 or 0 for a pair of opposing keys
func axis(p *component.PlayerComponent, pos, neg string) float64 {
	v := 0.0
	if p.Pressed(pos) {
		v++
	}
	if p.Pressed(neg) {
		v--
	}
	return v
}
