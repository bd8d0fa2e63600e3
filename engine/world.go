package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/status"
)

// World owns one registry, scheduler, and event bus
// Constructed explicitly and passed to every system; there is no global world
type World struct {
	ID        uuid.UUID
	Registry  *Registry
	Scheduler *Scheduler
	Bus       *event.Bus
	Queue     *event.Queue
	Status    *status.Registry
	Log       *zap.Logger

	frame   int64
	metrics worldMetrics
}

type worldMetrics struct {
	frame         *atomic.Int64
	entities      *atomic.Int64
	eventsDrained *atomic.Int64
}

// Option configures a World at construction
type Option func(*World)

// WithLogger sets the world logger, default zap.NewNop
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.Log = log
		}
	}
}

// WithStatus shares a metrics registry across worlds or with the host
func WithStatus(reg *status.Registry) Option {
	return func(w *World) {
		if reg != nil {
			w.Status = reg
		}
	}
}

// WithQueue injects the cross-goroutine input queue
func WithQueue(q *event.Queue) Option {
	return func(w *World) {
		if q != nil {
			w.Queue = q
		}
	}
}

// NewWorld creates an empty world
func NewWorld(opts ...Option) *World {
	w := &World{
		ID:       uuid.New(),
		Registry: NewRegistry(),
		Bus:      event.NewBus(),
		Queue:    event.NewQueue(),
		Status:   status.NewRegistry(),
		Log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Log = w.Log.With(zap.Stringer("world", w.ID))
	w.Scheduler = newScheduler(w)
	w.metrics = worldMetrics{
		frame:         w.Status.Ints.Get(status.KeyFrame),
		entities:      w.Status.Ints.Get(status.KeyEntities),
		eventsDrained: w.Status.Ints.Get(status.KeyEventsDrained),
	}
	return w
}

// Frame returns the number of completed Run calls
func (w *World) Frame() int64 {
	return w.frame
}

// Run advances the world by one frame
func (w *World) Run(elapsed time.Duration) {
	w.Scheduler.Run(elapsed)
}

// SetEvent emits payload synchronously on the named channel
func (w *World) SetEvent(name string, payload any) error {
	return w.Bus.EmitName(name, payload)
}

// Emit emits a typed event synchronously
func (w *World) Emit(t event.Type, payload any) {
	w.Bus.Emit(event.Event{Type: t, Payload: payload})
}

// Post queues an event from any goroutine for delivery at the next frame
func (w *World) Post(t event.Type, payload any) {
	w.Queue.Push(event.Event{Type: t, Payload: payload})
}
