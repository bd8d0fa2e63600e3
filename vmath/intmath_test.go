package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivEuclidMod(t *testing.T) {
	tests := []struct {
		a, b     int
		div, mod int
	}{
		{0, 16, 0, 0},
		{15, 16, 0, 15},
		{16, 16, 1, 0},
		{-1, 16, -1, 15},
		{-16, 16, -1, 0},
		{-17, 16, -2, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.div, FloorDiv(tt.a, tt.b), "FloorDiv(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.mod, EuclidMod(tt.a, tt.b), "EuclidMod(%d, %d)", tt.a, tt.b)
		// Round trip
		assert.Equal(t, tt.a, FloorDiv(tt.a, tt.b)*tt.b+EuclidMod(tt.a, tt.b))
	}
}

func TestFloorInt(t *testing.T) {
	assert.Equal(t, 0, FloorInt(0.9))
	assert.Equal(t, -1, FloorInt(-0.1))
	assert.Equal(t, -2, FloorInt(-2))
	assert.Equal(t, 3, FloorInt(3))
}
