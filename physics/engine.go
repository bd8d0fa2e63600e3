package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies a body inside one Engine, zero is never issued
type BodyID uint64

// BodySpec describes a body at insertion
// Position is the bottom-center of an axis-aligned box of Size
type BodySpec struct {
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Size         mgl64.Vec3
	GravityScale float64
}

// BodyState is the per-frame readback
type BodyState struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
}

// Engine is the boundary to the physics solver
// The frame loop pushes velocities, steps once, then reads positions back
type Engine interface {
	AddBody(spec BodySpec) BodyID
	RemoveBody(id BodyID) bool
	SetVelocity(id BodyID, v mgl64.Vec3) bool
	SetPosition(id BodyID, p mgl64.Vec3) bool
	Body(id BodyID) (BodyState, bool)
	Step(dt time.Duration)
}
