package physics

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-voxel/voxel"
)

func floorGrid() *voxel.Grid {
	g := voxel.NewGrid(16, voxel.ChunkCoord{})
	g.Fill(func(x, y, z int) uint8 {
		if y == 0 {
			return 1
		}
		return voxel.Empty
	})
	return g
}

var playerSize = mgl64.Vec3{0.6, 1.8, 0.6}

func TestFreeFall(t *testing.T) {
	k := NewKinematic(nil)
	id := k.AddBody(BodySpec{Position: mgl64.Vec3{0, 100, 0}, Size: playerSize, GravityScale: 1})

	for i := 0; i < 10; i++ {
		k.Step(100 * time.Millisecond)
	}
	st, ok := k.Body(id)
	require.True(t, ok)
	assert.InDelta(t, DefaultGravity, st.Velocity.Y(), 1e-9)
	assert.Less(t, st.Position.Y(), 100.0)
	assert.False(t, st.Grounded)
}

func TestLandsOnFloor(t *testing.T) {
	k := NewKinematic(floorGrid())
	id := k.AddBody(BodySpec{Position: mgl64.Vec3{8.5, 5, 8.5}, Size: playerSize, GravityScale: 1})

	for i := 0; i < 90; i++ {
		k.Step(16 * time.Millisecond)
	}
	st, _ := k.Body(id)
	assert.True(t, st.Grounded)
	assert.InDelta(t, 1.0, st.Position.Y(), 1e-3)
	assert.Zero(t, st.Velocity.Y())
}

func TestFastFallDoesNotTunnel(t *testing.T) {
	k := NewKinematic(floorGrid())
	id := k.AddBody(BodySpec{
		Position:     mgl64.Vec3{4.5, 12, 4.5},
		Velocity:     mgl64.Vec3{0, -DefaultTerminalSpeed, 0},
		Size:         playerSize,
		GravityScale: 1,
	})
	k.Step(500 * time.Millisecond)

	st, _ := k.Body(id)
	assert.True(t, st.Grounded)
	assert.GreaterOrEqual(t, st.Position.Y(), 1.0)
}

func TestWallStopsHorizontalMotion(t *testing.T) {
	g := floorGrid()
	for y := 1; y <= 3; y++ {
		for z := 0; z < 16; z++ {
			g.SetVoxel(10, y, z, 2)
		}
	}
	k := NewKinematic(g)
	id := k.AddBody(BodySpec{Position: mgl64.Vec3{8.5, 1.01, 8.5}, Size: playerSize, GravityScale: 1})

	for i := 0; i < 60; i++ {
		k.SetVelocity(id, mgl64.Vec3{5, mustBody(t, k, id).Velocity.Y(), 0})
		k.Step(16 * time.Millisecond)
	}
	st := mustBody(t, k, id)
	assert.InDelta(t, 10-playerSize.X()/2, st.Position.X(), 1e-3)
	assert.True(t, st.Grounded)
}

func TestCustomSolidity(t *testing.T) {
	g := floorGrid()
	k := NewKinematic(g)
	k.SetSolid(func(v uint8) bool { return v == 9 })
	id := k.AddBody(BodySpec{Position: mgl64.Vec3{8.5, 2, 8.5}, Size: playerSize, GravityScale: 1})

	for i := 0; i < 30; i++ {
		k.Step(16 * time.Millisecond)
	}
	st := mustBody(t, k, id)
	assert.Less(t, st.Position.Y(), 1.0, "non-solid floor must not hold the body")
}

func TestRemoveBody(t *testing.T) {
	k := NewKinematic(nil)
	a := k.AddBody(BodySpec{})
	b := k.AddBody(BodySpec{})
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, k.BodyCount())

	assert.True(t, k.RemoveBody(a))
	assert.False(t, k.RemoveBody(a))
	assert.False(t, k.SetVelocity(a, mgl64.Vec3{1, 0, 0}))
	_, ok := k.Body(a)
	assert.False(t, ok)
	assert.Equal(t, 1, k.BodyCount())

	assert.True(t, k.SetPosition(b, mgl64.Vec3{1, 2, 3}))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, mustBody(t, k, b).Position)
}

func TestCapHorizontal(t *testing.T) {
	v := mgl64.Vec3{3, -7, 4}
	assert.True(t, CapHorizontal(&v, 2.5))
	assert.InDelta(t, 1.5, v.X(), 1e-9)
	assert.InDelta(t, 2.0, v.Z(), 1e-9)
	assert.Equal(t, -7.0, v.Y())

	assert.False(t, CapHorizontal(&v, 10))
}

func TestIntegrate(t *testing.T) {
	p := mgl64.Vec3{}
	v := mgl64.Vec3{1, 0, 0}
	Integrate(&p, &v, mgl64.Vec3{0, -10, 0}, 0.5)
	assert.Equal(t, mgl64.Vec3{1, -5, 0}, v)
	assert.Equal(t, mgl64.Vec3{0.5, -2.5, 0}, p)
}

func mustBody(t *testing.T, k *Kinematic, id BodyID) BodyState {
	t.Helper()
	st, ok := k.Body(id)
	require.True(t, ok)
	return st
}
