package voxel

import (
	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/vi-voxel/core"
)

// Empty is the cell value of an unoccupied voxel
const Empty uint8 = 0

// Source is the read view used by meshing, raycasting and physics
type Source interface {
	Voxel(x, y, z int) uint8
}

// Grid is a dense occupancy grid holding exactly one chunk, addressed in world voxel coordinates
// Not safe for concurrent use; the frame thread is the single writer
type Grid struct {
	cellSize int
	chunk    ChunkCoord
	cells    []uint8
	count    int
	version  uint64
}

var _ Source = (*Grid)(nil)

// NewGrid allocates an empty grid for the given chunk, cellSize must be positive
func NewGrid(cellSize int, chunk ChunkCoord) *Grid {
	if cellSize <= 0 {
		panic("voxel: cell size must be positive")
	}
	return &Grid{
		cellSize: cellSize,
		chunk:    chunk,
		cells:    make([]uint8, cellSize*cellSize*cellSize),
	}
}

// CellSize returns the edge length in voxels
func (g *Grid) CellSize() int {
	return g.cellSize
}

// Chunk returns the resident chunk coordinate
func (g *Grid) Chunk() ChunkCoord {
	return g.chunk
}

// Origin returns the world coordinate of the chunk's minimum corner
func (g *Grid) Origin() core.Vec3i {
	return g.chunk.Origin(g.cellSize)
}

// Contains reports whether the world voxel lies in the resident chunk
func (g *Grid) Contains(x, y, z int) bool {
	return ChunkOf(x, y, z, g.cellSize) == g.chunk
}

// Offset maps a world voxel to its flat index: y*size² + z*size + x on local coordinates
// Returns false for coordinates outside the resident chunk instead of wrapping
func (g *Grid) Offset(x, y, z int) (int, bool) {
	if !g.Contains(x, y, z) {
		return 0, false
	}
	lx, ly, lz := Local(x, y, z, g.cellSize)
	return ly*g.cellSize*g.cellSize + lz*g.cellSize + lx, true
}

// Lookup returns the cell value and whether the coordinate is in the chunk
func (g *Grid) Lookup(x, y, z int) (uint8, bool) {
	off, ok := g.Offset(x, y, z)
	if !ok {
		return Empty, false
	}
	return g.cells[off], true
}

// Voxel returns the cell value, Empty for unset or out-of-chunk cells
func (g *Grid) Voxel(x, y, z int) uint8 {
	v, _ := g.Lookup(x, y, z)
	return v
}

// SetVoxel stores v and reports whether the cell changed
// Out-of-chunk coordinates and writes of the current value are no-ops
func (g *Grid) SetVoxel(x, y, z int, v uint8) bool {
	off, ok := g.Offset(x, y, z)
	if !ok {
		return false
	}
	old := g.cells[off]
	if old == v {
		return false
	}
	switch {
	case old == Empty:
		g.count++
	case v == Empty:
		g.count--
	}
	g.cells[off] = v
	g.version++
	return true
}

// Neighbor returns the voxel adjacent across face f and whether it is in the chunk
func (g *Grid) Neighbor(x, y, z int, f Face) (uint8, bool) {
	d := f.Dir()
	return g.Lookup(x+d.X, y+d.Y, z+d.Z)
}

// Fill sets every cell from fn(world x, y, z)
func (g *Grid) Fill(fn func(x, y, z int) uint8) {
	o := g.Origin()
	for ly := 0; ly < g.cellSize; ly++ {
		for lz := 0; lz < g.cellSize; lz++ {
			for lx := 0; lx < g.cellSize; lx++ {
				g.SetVoxel(o.X+lx, o.Y+ly, o.Z+lz, fn(o.X+lx, o.Y+ly, o.Z+lz))
			}
		}
	}
}

// Clear empties every cell
func (g *Grid) Clear() {
	if g.count == 0 {
		return
	}
	clear(g.cells)
	g.count = 0
	g.version++
}

// Count returns the number of occupied cells
func (g *Grid) Count() int {
	return g.count
}

// Version increments on every effective mutation
func (g *Grid) Version() uint64 {
	return g.version
}

// Checksum fingerprints the cell contents
func (g *Grid) Checksum() uint64 {
	return xxhash.Sum64(g.cells)
}

// TopY returns the highest occupied world y of column (x, z) and its value
// ok is false for empty or out-of-chunk columns
func (g *Grid) TopY(x, z int) (y int, v uint8, ok bool) {
	o := g.Origin()
	for ly := g.cellSize - 1; ly >= 0; ly-- {
		wy := o.Y + ly
		cell, in := g.Lookup(x, wy, z)
		if !in {
			return 0, Empty, false
		}
		if cell != Empty {
			return wy, cell, true
		}
	}
	return 0, Empty, false
}
