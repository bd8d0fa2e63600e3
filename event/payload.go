package event

import (
	"github.com/lixenwraith/vi-voxel/core"
)

// KeyPayload carries a key name, lowercase for printable keys ("w", "Space", "ArrowUp")
type KeyPayload struct {
	Key string
}

// MousePayload carries relative motion and the absolute cell under the pointer
type MousePayload struct {
	MovementX float64
	MovementY float64
	X, Y      int
}

// ClickPayload carries the pressed button (1 primary, 2 middle, 3 secondary)
type ClickPayload struct {
	Button int
	X, Y   int
}

type ResizePayload struct {
	Width  int
	Height int
}

// VoxelChangedPayload is emitted after a grid write that changed the cell
type VoxelChangedPayload struct {
	Pos core.Vec3i
	Old uint8
	New uint8
}

type MeshRebuiltPayload struct {
	Owner    core.Entity
	Faces    int
	Checksum uint64
}

// BlockPickedPayload reports the cell hit by an interaction ray
// Normal is zero when the ray started inside the cell
type BlockPickedPayload struct {
	Cell   core.Vec3i
	Normal core.Vec3i
	Voxel  uint8
	Button int
}

type SystemPayload struct {
	Name string
}

// CustomPayload wraps data for script-defined channels
type CustomPayload struct {
	Name string
	Data any
}
