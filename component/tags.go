package component

import (
	"github.com/lixenwraith/vi-voxel/core"
)

// Capability tags
const (
	TagTransform core.Tag = "Transform"
	TagRigidbody core.Tag = "Rigidbody"
	TagVoxel     core.Tag = "Voxel"
	TagPlayer    core.Tag = "Player"
	TagCamera    core.Tag = "Camera"
	TagEmitter   core.Tag = "Emitter"
	TagScript    core.Tag = "Script"
)
