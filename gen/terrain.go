package gen

import (
	"github.com/lixenwraith/vi-voxel/voxel"
)

// Terrain layers blocks under a height field
type Terrain struct {
	Heights    HeightSource
	Surface    uint8
	Subsurface uint8
	Deep       uint8
	// SoilDepth is the number of Subsurface cells under the Surface cell
	SoilDepth int
}

// DefaultTerrain uses palette ids 1 grass, 2 dirt, 3 stone
func DefaultTerrain(heights HeightSource) Terrain {
	return Terrain{
		Heights:    heights,
		Surface:    1,
		Subsurface: 2,
		Deep:       3,
		SoilDepth:  3,
	}
}

// Block returns the block at height y in a column whose surface is h
func (t Terrain) Block(y, h int) uint8 {
	switch {
	case y > h:
		return voxel.Empty
	case y == h:
		return t.Surface
	case y >= h-t.SoilDepth:
		return t.Subsurface
	default:
		return t.Deep
	}
}

// Fill overwrites every cell of g; returns the number of filled cells
func (t Terrain) Fill(g *voxel.Grid) int {
	o := g.Origin()
	size := g.CellSize()
	heights := make([]int, size*size)
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			heights[z*size+x] = t.Heights.Height(o.X+x, o.Z+z)
		}
	}
	g.Fill(func(x, y, z int) uint8 {
		return t.Block(y, heights[(z-o.Z)*size+(x-o.X)])
	})
	return g.Count()
}
