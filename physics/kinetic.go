package physics

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/voxel"
)

const (
	// DefaultGravity is the vertical acceleration in cells per second squared
	DefaultGravity = -24.0
	// DefaultTerminalSpeed caps falling speed
	DefaultTerminalSpeed = 40.0

	// maxSubstep bounds per-substep displacement so a body cannot skip a cell
	maxSubstep = 0.4
	skin       = 1e-6
)

type body struct {
	pos          mgl64.Vec3
	vel          mgl64.Vec3
	size         mgl64.Vec3
	gravityScale float64
	grounded     bool
}

// Kinematic is a gravity-plus-voxel-collision reference engine
// Bodies are axis-aligned boxes resolved one axis at a time against solid cells
type Kinematic struct {
	Gravity       float64
	TerminalSpeed float64

	world  voxel.Source
	solid  func(uint8) bool
	bodies map[BodyID]*body
	order  []BodyID
	next   BodyID
}

// NewKinematic creates an engine colliding against world; nil world means free fall
func NewKinematic(world voxel.Source) *Kinematic {
	return &Kinematic{
		Gravity:       DefaultGravity,
		TerminalSpeed: DefaultTerminalSpeed,
		world:         world,
		solid:         func(v uint8) bool { return v != voxel.Empty },
		bodies:        make(map[BodyID]*body),
	}
}

// SetWorld swaps the collision source
func (k *Kinematic) SetWorld(world voxel.Source) {
	k.world = world
}

// SetSolid overrides which voxel values block movement
func (k *Kinematic) SetSolid(fn func(uint8) bool) {
	if fn != nil {
		k.solid = fn
	}
}

func (k *Kinematic) AddBody(spec BodySpec) BodyID {
	k.next++
	id := k.next
	k.bodies[id] = &body{
		pos:          spec.Position,
		vel:          spec.Velocity,
		size:         spec.Size,
		gravityScale: spec.GravityScale,
	}
	k.order = append(k.order, id)
	return id
}

func (k *Kinematic) RemoveBody(id BodyID) bool {
	if _, ok := k.bodies[id]; !ok {
		return false
	}
	delete(k.bodies, id)
	for i, other := range k.order {
		if other == id {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
	return true
}

func (k *Kinematic) SetVelocity(id BodyID, v mgl64.Vec3) bool {
	b, ok := k.bodies[id]
	if ok {
		b.vel = v
	}
	return ok
}

func (k *Kinematic) SetPosition(id BodyID, p mgl64.Vec3) bool {
	b, ok := k.bodies[id]
	if ok {
		b.pos = p
		b.grounded = false
	}
	return ok
}

func (k *Kinematic) Body(id BodyID) (BodyState, bool) {
	b, ok := k.bodies[id]
	if !ok {
		return BodyState{}, false
	}
	return BodyState{Position: b.pos, Velocity: b.vel, Grounded: b.grounded}, true
}

// BodyCount returns the number of live bodies
func (k *Kinematic) BodyCount() int {
	return len(k.order)
}

// Step advances every body by dt in insertion order
func (k *Kinematic) Step(dt time.Duration) {
	seconds := dt.Seconds()
	if seconds <= 0 {
		return
	}
	for _, id := range k.order {
		k.stepBody(k.bodies[id], seconds)
	}
}

func (k *Kinematic) stepBody(b *body, dt float64) {
	b.vel[1] += k.Gravity * b.gravityScale * dt
	if b.vel[1] < -k.TerminalSpeed {
		b.vel[1] = -k.TerminalSpeed
	}

	disp := b.vel.Mul(dt)
	maxDisp := math.Max(math.Abs(disp[0]), math.Max(math.Abs(disp[1]), math.Abs(disp[2])))
	steps := int(math.Ceil(maxDisp / maxSubstep))
	if steps < 1 {
		steps = 1
	}
	sub := disp.Mul(1 / float64(steps))

	b.grounded = false
	for i := 0; i < steps; i++ {
		// Y first so a landing body slides on the surface the same substep
		for _, axis := range [3]int{1, 0, 2} {
			if sub[axis] == 0 {
				continue
			}
			if k.moveAxis(b, axis, sub[axis]) {
				if axis == 1 && sub[1] < 0 {
					b.grounded = true
				}
				b.vel[axis] = 0
				sub[axis] = 0
			}
		}
	}
}

// bounds returns the inclusive min and exclusive max corners of b
func (b *body) bounds() (lo, hi mgl64.Vec3) {
	lo = mgl64.Vec3{b.pos[0] - b.size[0]/2, b.pos[1], b.pos[2] - b.size[2]/2}
	hi = mgl64.Vec3{b.pos[0] + b.size[0]/2, b.pos[1] + b.size[1], b.pos[2] + b.size[2]/2}
	return lo, hi
}

// moveAxis translates b along axis by d and snaps it flush to the first
// blocking face; returns true when blocked
func (k *Kinematic) moveAxis(b *body, axis int, d float64) bool {
	b.pos[axis] += d
	if k.world == nil || !k.overlaps(b) {
		return false
	}
	lo, hi := b.bounds()
	if d > 0 {
		b.pos[axis] -= hi[axis] - math.Floor(hi[axis]) + skin
	} else {
		b.pos[axis] += math.Floor(lo[axis]) + 1 - lo[axis] + skin
	}
	return true
}

// overlaps reports whether b intersects any solid cell
func (k *Kinematic) overlaps(b *body) bool {
	lo, hi := b.bounds()
	x0, x1 := int(math.Floor(lo[0])), int(math.Floor(hi[0]-skin))
	y0, y1 := int(math.Floor(lo[1])), int(math.Floor(hi[1]-skin))
	z0, z1 := int(math.Floor(lo[2])), int(math.Floor(hi[2]-skin))
	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				if k.solid(k.world.Voxel(x, y, z)) {
					return true
				}
			}
		}
	}
	return false
}
