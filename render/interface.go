package render

import (
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// MeshSink receives rebuilt chunk meshes
// The mesh is handed off immutable; the sink may retain it until the next upload
type MeshSink interface {
	UploadMesh(owner core.Entity, m *voxel.Mesh)
}

// Drawer presents one frame
type Drawer interface {
	Draw(scene Scene)
}

// Resizer is implemented by drawers that must react to a viewport change
type Resizer interface {
	Resize(width, height int)
}
