package system

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/component"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/render"
	"github.com/lixenwraith/vi-voxel/status"
	"github.com/lixenwraith/vi-voxel/voxel"
)

var voxelTags = []core.Tag{component.TagVoxel}

// MeshSystem rebuilds dirty chunk meshes and hands them to the sink
// A dirty chunk whose checksum matches the meshed one is cleared without a rebuild
type MeshSystem struct {
	engine.SystemBase
	builder *voxel.MeshBuilder
	sink    render.MeshSink

	faces    *atomic.Int64
	rebuilds *atomic.Int64
	skipped  *atomic.Int64
}

// NewMeshSystem creates the system; a nil sink keeps meshes on the component only
func NewMeshSystem(w *engine.World, builder *voxel.MeshBuilder, sink render.MeshSink) *MeshSystem {
	return &MeshSystem{
		SystemBase: engine.NewSystemBase(w, NameMesh),
		builder:    builder,
		sink:       sink,
		faces:      w.Status.Ints.Get(status.KeyMeshFaces),
		rebuilds:   w.Status.Ints.Get(status.KeyMeshRebuilds),
		skipped:    w.Status.Ints.Get(status.KeyMeshSkipped),
	}
}

func (s *MeshSystem) OnUpdate(_ time.Duration) {
	var built []event.MeshRebuiltPayload

	s.Registry.ApplyToEach(voxelTags, func(e core.Entity) {
		vc := engine.MustGet[*component.VoxelComponent](s.Registry, e)
		if !vc.IsEnabled() || !vc.Dirty || vc.Grid == nil {
			return
		}
		sum := vc.Grid.Checksum()
		vc.Dirty = false
		if vc.Mesh != nil && sum == vc.MeshedChecksum {
			s.skipped.Add(1)
			return
		}

		start := time.Now()
		vc.Mesh = s.builder.Build(vc.Grid)
		vc.MeshedChecksum = sum
		if s.sink != nil {
			s.sink.UploadMesh(e, vc.Mesh)
		}
		s.rebuilds.Add(1)
		s.faces.Store(int64(vc.Mesh.FaceCount()))
		s.Log.Debug("mesh rebuilt",
			zap.Stringer("owner", e),
			zap.Int("faces", vc.Mesh.FaceCount()),
			zap.Duration("took", time.Since(start)),
		)
		built = append(built, event.MeshRebuiltPayload{Owner: e, Faces: vc.Mesh.FaceCount(), Checksum: sum})
	})

	// Listeners run after iteration so they may mutate the registry
	for _, p := range built {
		s.World.Emit(event.MeshRebuilt, p)
	}
}
