package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/vmath"
)

// MaxPitch keeps the view short of vertical so the look vector never degenerates
const MaxPitch = math.Pi/2 - 0.01

// CameraComponent holds first-person view angles in radians
type CameraComponent struct {
	core.ComponentBase
	Yaw         float64
	Pitch       float64
	Sensitivity float64
}

func NewCamera(e core.Entity) *CameraComponent {
	return &CameraComponent{
		ComponentBase: core.NewComponentBase(e),
		Sensitivity:   0.002,
	}
}

func (*CameraComponent) Tag() core.Tag { return TagCamera }

// Rotate applies pointer motion; pitch is clamped, yaw wraps to [-pi, pi)
func (c *CameraComponent) Rotate(dx, dy float64) {
	c.Yaw -= dx * c.Sensitivity
	c.Yaw = math.Mod(c.Yaw+math.Pi, 2*math.Pi)
	if c.Yaw < 0 {
		c.Yaw += 2 * math.Pi
	}
	c.Yaw -= math.Pi
	c.Pitch = vmath.Clamp(c.Pitch-dy*c.Sensitivity, -MaxPitch, MaxPitch)
}

// Look returns the unit view direction
func (c *CameraComponent) Look() mgl64.Vec3 {
	return vmath.LookDir(c.Yaw, c.Pitch)
}

// Forward returns the horizontal unit heading
func (c *CameraComponent) Forward() mgl64.Vec3 {
	return vmath.LookDir(c.Yaw, 0)
}

// Right returns the horizontal unit vector to the right of Forward
func (c *CameraComponent) Right() mgl64.Vec3 {
	f := c.Forward()
	return mgl64.Vec3{-f[2], 0, f[0]}
}
