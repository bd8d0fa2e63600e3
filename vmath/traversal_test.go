package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(start, end mgl64.Vec3) [][3]int {
	var cells [][3]int
	tr := NewGridTraverser(start, end)
	for tr.Next() {
		x, y, z := tr.Pos()
		cells = append(cells, [3]int{x, y, z})
	}
	return cells
}

func TestTraverserAxisAligned(t *testing.T) {
	cells := collect(mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{3.5, 0.5, 0.5})
	assert.Equal(t, [][3]int{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}, cells)
}

func TestTraverserNegativeStart(t *testing.T) {
	cells := collect(mgl64.Vec3{-0.5, 0.5, 0.5}, mgl64.Vec3{-2.5, 0.5, 0.5})
	assert.Equal(t, [][3]int{{-1, 0, 0}, {-2, 0, 0}, {-3, 0, 0}}, cells)
}

func TestTraverserSixConnected(t *testing.T) {
	cells := collect(mgl64.Vec3{0.2, 0.3, 0.4}, mgl64.Vec3{4.7, 2.9, 3.1})
	require.NotEmpty(t, cells)
	for i := 1; i < len(cells); i++ {
		d := 0
		for a := 0; a < 3; a++ {
			d += int(math.Abs(float64(cells[i][a] - cells[i-1][a])))
		}
		assert.Equal(t, 1, d, "step %d must cross exactly one face", i)
	}
	assert.Equal(t, [3]int{4, 2, 3}, cells[len(cells)-1])
}

func TestTraverserNormalAndT(t *testing.T) {
	start := mgl64.Vec3{0.5, 0.5, 0.5}
	tr := NewGridTraverser(start, mgl64.Vec3{0.5, 0.5, 3.5})

	require.True(t, tr.Next())
	assert.Equal(t, AxisNone, tr.Stepped())
	assert.Equal(t, mgl64.Vec3{}, tr.Normal())

	require.True(t, tr.Next())
	assert.Equal(t, AxisZ, tr.Stepped())
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, tr.Normal())
	assert.InDelta(t, 0.5, tr.T(), 1e-12)
	assert.InDelta(t, 1.0, tr.Point(start)[2], 1e-12)
}

func TestTraverserDegenerate(t *testing.T) {
	cells := collect(mgl64.Vec3{1.5, 1.5, 1.5}, mgl64.Vec3{1.5, 1.5, 1.5})
	assert.Equal(t, [][3]int{{1, 1, 1}}, cells)
}

func TestLookDir(t *testing.T) {
	d := LookDir(0, 0)
	assert.InDelta(t, 0, d[0], 1e-12)
	assert.InDelta(t, -1, d[2], 1e-12)

	up := LookDir(0, math.Pi/2)
	assert.InDelta(t, 1, up[1], 1e-12)

	assert.InDelta(t, 1, LookDir(0.7, -0.3).Len(), 1e-12)
}
