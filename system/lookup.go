package system

import (
	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
)

// System names, also the owner keys of their bus subscriptions
const (
	NameWorldGen    = "worldgen"
	NameScript      = "script"
	NameInput       = "input"
	NamePlayer      = "player"
	NamePhysics     = "physics"
	NameInteraction = "interaction"
	NameEmitter     = "emitter"
	NameMesh        = "mesh"
	NameSound       = "sound"
	NameRender      = "render"
)

// Entity names
const (
	EntityWorld  = "world"
	EntityPlayer = "player"
)

// worldVoxel returns the resident chunk entity created by the world generator
func worldVoxel(r *engine.Registry) (core.Entity, *component.VoxelComponent, bool) {
	for _, e := range r.GetByName(EntityWorld) {
		if vc, err := engine.Get[*component.VoxelComponent](r, e); err == nil {
			return e, vc, true
		}
	}
	return core.None, nil, false
}

// avatar bundles the components of the controlled player
type avatar struct {
	entity    core.Entity
	player    *component.PlayerComponent
	transform *component.TransformComponent
	camera    *component.CameraComponent
}

// findAvatar resolves the earliest entity carrying player, transform and camera
func findAvatar(r *engine.Registry) (avatar, bool) {
	e, ok := r.Query().With(component.TagPlayer, component.TagTransform, component.TagCamera).First()
	if !ok {
		return avatar{}, false
	}
	return avatar{
		entity:    e,
		player:    engine.MustGet[*component.PlayerComponent](r, e),
		transform: engine.MustGet[*component.TransformComponent](r, e),
		camera:    engine.MustGet[*component.CameraComponent](r, e),
	}, true
}
