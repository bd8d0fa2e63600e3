package gen

import (
	"github.com/lixenwraith/vi-voxel/vmath"
)

// HeightSource gives the surface height of a world column
// Implementations sample by world coordinate so chunk seams line up
type HeightSource interface {
	Height(x, z int) int
}

// Flat is a constant surface
type Flat struct {
	Level int
}

func (f Flat) Height(int, int) int {
	return f.Level
}

// Hashed is value noise: hashed lattice heights, bilinear in between
type Hashed struct {
	Seed      uint32
	Base      int
	Amplitude int
	// Period is the lattice spacing in cells, values below 1 act as 1
	Period int
}

func (h Hashed) Height(x, z int) int {
	p := h.Period
	if p < 1 {
		p = 1
	}
	cx, cz := vmath.FloorDiv(x, p), vmath.FloorDiv(z, p)
	fx := float64(vmath.EuclidMod(x, p)) / float64(p)
	fz := float64(vmath.EuclidMod(z, p)) / float64(p)

	v00 := h.lattice(cx, cz)
	v10 := h.lattice(cx+1, cz)
	v01 := h.lattice(cx, cz+1)
	v11 := h.lattice(cx+1, cz+1)

	sx, sz := smooth(fx), smooth(fz)
	top := v00 + (v10-v00)*sx
	bottom := v01 + (v11-v01)*sx
	v := top + (bottom-top)*sz

	return h.Base + vmath.FloorInt(v*float64(h.Amplitude)+0.5)
}

func (h Hashed) lattice(x, z int) float64 {
	return unit(Hash2(h.Seed, int32(x), int32(z)))
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
