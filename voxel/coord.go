package voxel

import (
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/vmath"
)

// ChunkCoord is the integer chunk index of a cubic region of cellSize³ voxels
type ChunkCoord struct {
	X, Y, Z int
}

// ChunkOf returns the chunk containing world voxel (x, y, z): floor(coord / size)
func ChunkOf(x, y, z, size int) ChunkCoord {
	return ChunkCoord{
		X: vmath.FloorDiv(x, size),
		Y: vmath.FloorDiv(y, size),
		Z: vmath.FloorDiv(z, size),
	}
}

// Local returns the cell-local coordinate of a world voxel, each axis in [0, size)
func Local(x, y, z, size int) (lx, ly, lz int) {
	return vmath.EuclidMod(x, size), vmath.EuclidMod(y, size), vmath.EuclidMod(z, size)
}

// Origin returns the world voxel coordinate of the chunk's minimum corner
func (c ChunkCoord) Origin(size int) core.Vec3i {
	return core.Vec3i{X: c.X * size, Y: c.Y * size, Z: c.Z * size}
}
