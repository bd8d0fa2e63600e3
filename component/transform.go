package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/vmath"
)

// TransformComponent holds world-space placement
// Position is written back from physics once per frame
type TransformComponent struct {
	core.ComponentBase
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

func NewTransform(e core.Entity, pos mgl64.Vec3) *TransformComponent {
	return &TransformComponent{
		ComponentBase: core.NewComponentBase(e),
		Position:      pos,
		Rotation:      mgl64.QuatIdent(),
		Scale:         mgl64.Vec3{1, 1, 1},
	}
}

func (*TransformComponent) Tag() core.Tag { return TagTransform }

// Cell returns the voxel cell containing Position
func (t *TransformComponent) Cell() core.Vec3i {
	return core.Vec3i{
		X: vmath.FloorInt(t.Position[0]),
		Y: vmath.FloorInt(t.Position[1]),
		Z: vmath.FloorInt(t.Position[2]),
	}
}
