package component

import (
	"github.com/lixenwraith/vi-voxel/core"
)

// PlayerComponent is the controllable avatar state
type PlayerComponent struct {
	core.ComponentBase
	Keys      map[string]bool
	Selected  uint8
	Speed     float64
	JumpSpeed float64
	Reach     float64
	EyeHeight float64
}

func NewPlayer(e core.Entity) *PlayerComponent {
	return &PlayerComponent{
		ComponentBase: core.NewComponentBase(e),
		Keys:          make(map[string]bool),
		Selected:      1,
		Speed:         5,
		JumpSpeed:     8,
		Reach:         6,
		EyeHeight:     1.6,
	}
}

func (*PlayerComponent) Tag() core.Tag { return TagPlayer }

// Pressed reports whether key is held
func (p *PlayerComponent) Pressed(key string) bool {
	return p.Keys[key]
}
