package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/asset"
	"github.com/lixenwraith/vi-voxel/audio"
	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/config"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/gen"
	"github.com/lixenwraith/vi-voxel/input"
	"github.com/lixenwraith/vi-voxel/physics"
	"github.com/lixenwraith/vi-voxel/render"
	"github.com/lixenwraith/vi-voxel/system"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// Fountain placement relative to the spawn column
const (
	fountainOffset   = 3
	fountainRate     = 12
	fountainLifetime = 1500 * time.Millisecond
)

// game owns the world and the fixed-interval frame loop
type game struct {
	world    *engine.World
	log      *zap.Logger
	interval time.Duration

	player      core.Entity
	interaction *system.InteractionSystem
	physics     *system.PhysicsSystem
	scripts     *system.ScriptSystem
}

// newGame builds the world, registers systems in frame order and spawns the starting entities
func newGame(cfg *config.Config, palette *data.Palette, drawer render.Drawer, sound audio.Player, log *zap.Logger) (*game, error) {
	w := engine.NewWorld(engine.WithLogger(log))

	terrain := gen.DefaultTerrain(gen.Hashed{
		Seed:      cfg.World.Seed,
		Base:      cfg.World.BaseHeight,
		Amplitude: cfg.World.Amplitude,
		Period:    cfg.World.Period,
	})
	chunk := voxel.ChunkCoord{X: cfg.World.Chunk[0], Y: cfg.World.Chunk[1], Z: cfg.World.Chunk[2]}
	worldGen := system.NewWorldGenSystem(w, cfg.World.CellSize, chunk, terrain)

	kin := physics.NewKinematic(nil)
	kin.Gravity = cfg.Physics.Gravity

	atlas := voxel.AtlasLayout{TileSize: cfg.Atlas.TileSize, Width: cfg.Atlas.Width, Height: cfg.Atlas.Height}
	sink, _ := drawer.(render.MeshSink)

	g := &game{
		world:       w,
		log:         log,
		interval:    cfg.Loop.FrameInterval,
		interaction: system.NewInteractionSystem(w),
		physics:     system.NewPhysicsSystem(w, kin, palette),
		scripts:     system.NewScriptSystem(w),
	}

	systems := []engine.System{
		worldGen,
		g.scripts,
		system.NewInputSystem(w, palette),
		system.NewPlayerSystem(w),
		g.physics,
		g.interaction,
		system.NewEmitterSystem(w, cfg.World.Seed),
		system.NewMeshSystem(w, voxel.NewMeshBuilder(atlas), sink),
		system.NewSoundSystem(w, sound, palette),
		system.NewRenderSystem(w, drawer, palette, g.interaction),
	}
	for _, s := range systems {
		if err := w.Scheduler.Register(s); err != nil {
			return nil, eris.Wrap(err, "register system")
		}
	}
	if err := w.Scheduler.StartAll(); err != nil {
		return nil, eris.Wrap(err, "start systems")
	}

	if err := g.populate(cfg, worldGen); err != nil {
		return nil, err
	}
	return g, nil
}

// populate spawns the avatar at the chunk center, a particle fountain beside it, and the script entity
func (g *game) populate(cfg *config.Config, worldGen *system.WorldGenSystem) error {
	vc, err := engine.Get[*component.VoxelComponent](g.world.Registry, worldGen.Entity())
	if err != nil {
		return eris.Wrap(err, "world chunk")
	}
	origin := vc.Grid.Origin()
	cx, cz := origin.X+cfg.World.CellSize/2, origin.Z+cfg.World.CellSize/2

	g.player, err = system.SpawnPlayer(g.world.Registry, system.SpawnPoint(vc.Grid, cx, cz), system.PlayerTuning{
		Speed:     cfg.Player.Speed,
		JumpSpeed: cfg.Player.JumpSpeed,
		Reach:     cfg.Player.Reach,
		EyeHeight: cfg.Player.EyeHeight,
		// Config is per pointer cell, the translator scales cells up
		LookSensitivity: cfg.Player.LookSensitivity / input.DefaultMouseScale,
	})
	if err != nil {
		return eris.Wrap(err, "spawn player")
	}

	fountain := system.SpawnPoint(vc.Grid, cx+fountainOffset, cz)
	if _, err := system.SpawnFountain(g.world.Registry, fountain, fountainRate, fountainLifetime); err != nil {
		return eris.Wrap(err, "spawn fountain")
	}

	e := g.world.Registry.Create("script")
	var sc *component.ScriptComponent
	if cfg.Paths.Script != "" {
		sc = component.NewScript(e, cfg.Paths.Script)
	} else {
		sc = component.NewInlineScript(e, asset.DefaultScript)
	}
	if err := g.world.Registry.Assign(sc); err != nil {
		return eris.Wrap(err, "attach script")
	}

	g.log.Info("world ready",
		zap.Int("cell_size", cfg.World.CellSize),
		zap.Int("voxels", vc.Grid.Count()),
		zap.Stringer("player", g.player),
	)
	return nil
}

// loop runs one frame per tick until ctx is cancelled
func (g *game) loop(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			g.world.Run(now.Sub(last))
			last = now
		}
	}
}

// close stops every system in reverse order and logs the final counters
func (g *game) close() {
	g.world.Scheduler.StopAll()
	g.log.Info("shutdown", g.world.Status.Fields()...)
}
