package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/gen"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// WorldGenSystem creates the resident chunk entity and fills it from a terrain
type WorldGenSystem struct {
	engine.SystemBase
	terrain  gen.Terrain
	cellSize int
	chunk    voxel.ChunkCoord
	entity   core.Entity
}

func NewWorldGenSystem(w *engine.World, cellSize int, chunk voxel.ChunkCoord, terrain gen.Terrain) *WorldGenSystem {
	return &WorldGenSystem{
		SystemBase: engine.NewSystemBase(w, NameWorldGen),
		terrain:    terrain,
		cellSize:   cellSize,
		chunk:      chunk,
	}
}

// OnInit generates the chunk once; a restart keeps the existing world
func (s *WorldGenSystem) OnInit() error {
	if s.entity != core.None && s.Registry.Alive(s.entity) {
		return nil
	}
	g := voxel.NewGrid(s.cellSize, s.chunk)
	filled := s.terrain.Fill(g)

	e := s.Registry.Create(EntityWorld)
	if err := s.Registry.Assign(component.NewVoxel(e, g)); err != nil {
		return err
	}
	s.entity = e
	s.Log.Info("world generated",
		zap.Int("cell_size", s.cellSize),
		zap.Int("filled", filled),
		zap.Uint64("checksum", g.Checksum()),
	)
	return nil
}

func (s *WorldGenSystem) OnUpdate(_ time.Duration) {}

// Entity returns the chunk entity, None before OnInit
func (s *WorldGenSystem) Entity() core.Entity {
	return s.entity
}

// SpawnPoint returns the bottom-center position above the surface of column (x, z)
// An empty column spawns at the chunk floor
func SpawnPoint(g *voxel.Grid, x, z int) mgl64.Vec3 {
	y := g.Origin().Y
	if top, _, ok := g.TopY(x, z); ok {
		y = top + 1
	}
	return mgl64.Vec3{float64(x) + 0.5, float64(y), float64(z) + 0.5}
}
