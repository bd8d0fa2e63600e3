package voxel

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/vmath"
)

// Hit is the first occupied cell along a ray segment
type Hit struct {
	Position mgl64.Vec3 // start + t*dir
	Normal   mgl64.Vec3 // entered face normal, zero when the start cell is occupied
	Cell     core.Vec3i
	Voxel    uint8
	Distance float64
}

// Adjacent returns the cell on the near side of the hit face, where a placed block goes
// Equals Cell when the ray started inside the hit cell
func (h Hit) Adjacent() core.Vec3i {
	return h.Cell.Add(core.Vec3i{
		X: int(h.Normal[0]),
		Y: int(h.Normal[1]),
		Z: int(h.Normal[2]),
	})
}

// Raycast walks the voxel cells crossed by start→end and returns the first nonzero cell
// ok is false when the segment is exhausted without a hit
func Raycast(src Source, start, end mgl64.Vec3) (Hit, bool) {
	tr := vmath.NewGridTraverser(start, end)
	for tr.Next() {
		x, y, z := tr.Pos()
		v := src.Voxel(x, y, z)
		if v == Empty {
			continue
		}
		return Hit{
			Position: tr.Point(start),
			Normal:   tr.Normal(),
			Cell:     core.Vec3i{X: x, Y: y, Z: z},
			Voxel:    v,
			Distance: tr.T(),
		}, true
	}
	return Hit{}, false
}

// RaycastDir casts from origin along dir for at most reach units
func RaycastDir(src Source, origin, dir mgl64.Vec3, reach float64) (Hit, bool) {
	d := vmath.SafeNormalize(dir)
	return Raycast(src, origin, origin.Add(d.Mul(reach)))
}
