package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// Scene is the per-frame snapshot handed to a Drawer
type Scene struct {
	Frame   int64
	Grid    *voxel.Grid
	Palette *data.Palette

	Player    mgl64.Vec3
	Yaw       float64
	HasPlayer bool

	// Target is the cell under the crosshair, valid when HasTarget
	Target    core.Vec3i
	HasTarget bool

	Particles []mgl64.Vec3
	Faces     int
	Selected  uint8
	Status    string
}
