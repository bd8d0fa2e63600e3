package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis identifies a traversal axis, AxisNone before the first step
type Axis int

const (
	AxisNone Axis = iota - 1
	AxisX
	AxisY
	AxisZ
)

// GridTraverser is a zero-allocation iterator over the unit cells crossed by a
// segment (Amanatides-Woo DDA). The first Pos() is the start cell at T() == 0.
//
// Tie-break on equal tMax: X never steps on a tie; Y steps when tMaxX == tMaxY
// and both are below tMaxZ; Z steps whenever it ties for the minimum.
type GridTraverser struct {
	curr    [3]int
	step    [3]int
	tMax    [3]float64
	tDelta  [3]float64
	dir     mgl64.Vec3
	length  float64
	t       float64
	stepped Axis

	started bool
	done    bool
}

// NewGridTraverser prepares traversal from start to end in cell units
func NewGridTraverser(start, end mgl64.Vec3) GridTraverser {
	delta := end.Sub(start)
	length := delta.Len()

	t := GridTraverser{
		length:  length,
		stepped: AxisNone,
	}

	for i := 0; i < 3; i++ {
		t.curr[i] = FloorInt(start[i])
	}

	if length == 0 {
		for i := 0; i < 3; i++ {
			t.tMax[i] = math.Inf(1)
			t.tDelta[i] = math.Inf(1)
			t.step[i] = 1
		}
		return t
	}

	t.dir = delta.Mul(1 / length)

	for i := 0; i < 3; i++ {
		d := t.dir[i]
		if d > 0 {
			t.step[i] = 1
		} else {
			t.step[i] = -1
		}

		if d == 0 {
			t.tDelta[i] = math.Inf(1)
			t.tMax[i] = math.Inf(1)
			continue
		}

		t.tDelta[i] = math.Abs(1 / d)
		var dist float64
		if t.step[i] > 0 {
			dist = float64(t.curr[i]+1) - start[i]
		} else {
			dist = start[i] - float64(t.curr[i])
		}
		t.tMax[i] = t.tDelta[i] * dist
	}

	return t
}

// Next advances to the next cell, false once the accumulated distance exceeds the segment length
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}

	var axis Axis
	if t.tMax[AxisX] < t.tMax[AxisY] {
		if t.tMax[AxisX] < t.tMax[AxisZ] {
			axis = AxisX
		} else {
			axis = AxisZ
		}
	} else {
		if t.tMax[AxisY] < t.tMax[AxisZ] {
			axis = AxisY
		} else {
			axis = AxisZ
		}
	}

	next := t.tMax[axis]
	if math.IsInf(next, 1) || next > t.length {
		t.done = true
		return false
	}

	t.curr[axis] += t.step[axis]
	t.t = next
	t.tMax[axis] += t.tDelta[axis]
	t.stepped = axis
	return true
}

// Pos returns the current cell
func (t *GridTraverser) Pos() (x, y, z int) {
	return t.curr[0], t.curr[1], t.curr[2]
}

// T returns the distance along the segment at which the current cell was entered
func (t *GridTraverser) T() float64 {
	return t.t
}

// Point returns start + T()*dir
func (t *GridTraverser) Point(start mgl64.Vec3) mgl64.Vec3 {
	return start.Add(t.dir.Mul(t.t))
}

// Normal returns the unit normal of the entered face, opposite to the last step
// Zero vector while still in the start cell
func (t *GridTraverser) Normal() mgl64.Vec3 {
	var n mgl64.Vec3
	if t.stepped != AxisNone {
		n[t.stepped] = float64(-t.step[t.stepped])
	}
	return n
}

// Stepped returns the axis crossed to reach the current cell
func (t *GridTraverser) Stepped() Axis {
	return t.stepped
}

// Direction returns the unit segment direction, zero for degenerate segments
func (t *GridTraverser) Direction() mgl64.Vec3 {
	return t.dir
}

// Length returns the segment length
func (t *GridTraverser) Length() float64 {
	return t.length
}
