package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SafeNormalize returns v scaled to unit length, zero vector stays zero
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// LookDir converts yaw/pitch (radians) to a unit view direction
// Yaw 0 looks down -Z, positive yaw turns toward -X, positive pitch looks up
func LookDir(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{
		-math.Sin(yaw) * cp,
		math.Sin(pitch),
		-math.Cos(yaw) * cp,
	}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
