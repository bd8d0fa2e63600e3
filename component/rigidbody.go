package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/physics"
)

// RigidbodyComponent mirrors a physics body
// Velocity is pushed to the engine before the step; Grounded is read back after
type RigidbodyComponent struct {
	core.ComponentBase
	Velocity     mgl64.Vec3
	Size         mgl64.Vec3
	GravityScale float64
	Grounded     bool

	// Body is zero until the physics system registers the entity
	Body physics.BodyID
}

func NewRigidbody(e core.Entity, size mgl64.Vec3) *RigidbodyComponent {
	return &RigidbodyComponent{
		ComponentBase: core.NewComponentBase(e),
		Size:          size,
		GravityScale:  1,
	}
}

func (*RigidbodyComponent) Tag() core.Tag { return TagRigidbody }
