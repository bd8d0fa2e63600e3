package component

import (
	"github.com/lixenwraith/vi-voxel/core"
)

// ScriptComponent attaches a Lua program to an entity
// Source is used when Path is empty
type ScriptComponent struct {
	core.ComponentBase
	Path   string
	Source string
	// Err holds the last load or runtime failure, empty when healthy
	Err string
}

func NewScript(e core.Entity, path string) *ScriptComponent {
	return &ScriptComponent{ComponentBase: core.NewComponentBase(e), Path: path}
}

// NewInlineScript attaches Lua source held in memory
func NewInlineScript(e core.Entity, source string) *ScriptComponent {
	return &ScriptComponent{ComponentBase: core.NewComponentBase(e), Source: source}
}

func (*ScriptComponent) Tag() core.Tag { return TagScript }
