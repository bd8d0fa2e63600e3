package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// CapHorizontal limits the XZ speed to maxSpeed, Y untouched
// Returns true if velocity was clamped
func CapHorizontal(v *mgl64.Vec3, maxSpeed float64) bool {
	magSq := v[0]*v[0] + v[2]*v[2]
	if magSq <= maxSpeed*maxSpeed || magSq == 0 {
		return false
	}
	scale := maxSpeed / mgl64.Vec2{v[0], v[2]}.Len()
	v[0] *= scale
	v[2] *= scale
	return true
}

// ApplyImpulse adds a velocity delta
func ApplyImpulse(v *mgl64.Vec3, delta mgl64.Vec3) {
	*v = v.Add(delta)
}

// Integrate is one semi-implicit Euler step: v += a*dt, p += v*dt
func Integrate(p, v *mgl64.Vec3, accel mgl64.Vec3, dt float64) {
	*v = v.Add(accel.Mul(dt))
	*p = p.Add(v.Mul(dt))
}
