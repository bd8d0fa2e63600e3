package component

import (
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// VoxelComponent owns the resident chunk and its derived mesh
// Grid writes go through SetVoxel so the mesh system sees the change
type VoxelComponent struct {
	core.ComponentBase
	Grid  *voxel.Grid
	Mesh  *voxel.Mesh
	Dirty bool

	// MeshedChecksum is the grid checksum the current Mesh was built from
	MeshedChecksum uint64
}

func NewVoxel(e core.Entity, g *voxel.Grid) *VoxelComponent {
	return &VoxelComponent{
		ComponentBase: core.NewComponentBase(e),
		Grid:          g,
		Dirty:         true,
	}
}

func (*VoxelComponent) Tag() core.Tag { return TagVoxel }

// SetVoxel writes one cell and marks the mesh stale when the grid changed
// Returns the previous value and whether the write altered the cell
func (v *VoxelComponent) SetVoxel(x, y, z int, val uint8) (old uint8, changed bool) {
	old, ok := v.Grid.Lookup(x, y, z)
	if !ok || old == val {
		return old, false
	}
	if v.Grid.SetVoxel(x, y, z, val) {
		v.Dirty = true
		return old, true
	}
	return old, false
}
