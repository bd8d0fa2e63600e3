package status

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Well-known metric keys
const (
	KeyFrame         = "engine.frame"
	KeyEntities      = "engine.entities"
	KeyEventsDrained = "engine.events_drained"
	KeyMeshFaces     = "mesh.faces"
	KeyMeshRebuilds  = "mesh.rebuilds"
	KeyMeshSkipped   = "mesh.skipped"
	KeyRaycasts      = "raycast.casts"
	KeyRaycastHits   = "raycast.hits"
	KeySelectedBlock = "player.block"
	KeyPlayerPos     = "player.pos"
	KeyFrameTime     = "loop.frame_ms"
	KeyScriptErrors  = "script.errors"
)

// Registry is the metrics facade shared by a world's systems
// Systems cache pointers in their constructors and write atomics per frame
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[Float]
	Strings *MetricMap[String]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[Float](),
		Strings: NewMetricMap[String](),
	}
}

// TotalCount returns the number of registered metrics across kinds
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Fields renders every metric as zap fields, sorted by key within each kind
func (r *Registry) Fields() []zap.Field {
	fields := make([]zap.Field, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		fields = append(fields, zap.Int64(k, v.Load()))
	})
	r.Floats.Range(func(k string, v *Float) {
		fields = append(fields, zap.Float64(k, v.Get()))
	})
	r.Strings.Range(func(k string, v *String) {
		fields = append(fields, zap.String(k, v.Load()))
	})
	return fields
}
