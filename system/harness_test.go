package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/gen"
	"github.com/lixenwraith/vi-voxel/voxel"
)

const (
	testChunk = 8
	frameStep = 50 * time.Millisecond
)

// flatTerrain fills only the y=0 layer with grass
var flatTerrain = gen.DefaultTerrain(gen.Flat{Level: 0})

type harness struct {
	t       *testing.T
	world   *engine.World
	palette *data.Palette
	gen     *WorldGenSystem
	events  []event.Event
}

// newHarness builds a world with a flat chunk; extra systems register after world generation
func newHarness(t *testing.T, systems ...func(h *harness) engine.System) *harness {
	t.Helper()
	w := engine.NewWorld()
	h := &harness{t: t, world: w, palette: data.DefaultPalette()}
	h.gen = NewWorldGenSystem(w, testChunk, voxel.ChunkCoord{}, flatTerrain)
	require.NoError(t, w.Scheduler.Register(h.gen))
	for _, mk := range systems {
		require.NoError(t, w.Scheduler.Register(mk(h)))
	}
	for _, typ := range []event.Type{event.VoxelChanged, event.BlockPicked, event.MeshRebuilt} {
		w.Bus.Subscribe(typ, "test", func(ev event.Event) { h.events = append(h.events, ev) })
	}
	require.NoError(t, w.Scheduler.StartAll())
	return h
}

func (h *harness) grid() *voxel.Grid {
	_, vc, ok := worldVoxel(h.world.Registry)
	require.True(h.t, ok)
	return vc.Grid
}

func (h *harness) voxelComponent() *component.VoxelComponent {
	_, vc, ok := worldVoxel(h.world.Registry)
	require.True(h.t, ok)
	return vc
}

func (h *harness) spawnPlayer(x, z int) core.Entity {
	e, err := SpawnPlayer(h.world.Registry, SpawnPoint(h.grid(), x, z), PlayerTuning{})
	require.NoError(h.t, err)
	return e
}

func (h *harness) run(frames int) {
	for i := 0; i < frames; i++ {
		h.world.Run(frameStep)
	}
}

func (h *harness) eventsOf(typ event.Type) []event.Event {
	var out []event.Event
	for _, ev := range h.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func (h *harness) avatar() avatar {
	a, ok := findAvatar(h.world.Registry)
	require.True(h.t, ok)
	return a
}

func (h *harness) rigidbody(e core.Entity) *component.RigidbodyComponent {
	return engine.MustGet[*component.RigidbodyComponent](h.world.Registry, e)
}

func cell(x, y, z int) core.Vec3i {
	return core.Vec3i{X: x, Y: y, Z: z}
}

func vec(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}
