package engine

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/event"
)

// State is a system's lifecycle state
type State int

const (
	Stopped State = iota
	Started
)

func (s State) String() string {
	if s == Started {
		return "started"
	}
	return "stopped"
}

// System is a named unit of per-frame logic
// Listeners should be registered in OnInit: Stop removes every subscription
// held under the system's name
type System interface {
	Name() string
	OnInit() error
	OnUpdate(elapsed time.Duration)
	OnClose()
}

type slot struct {
	sys   System
	state State
}

// Scheduler drives system lifecycles and the per-frame update order
type Scheduler struct {
	world  *World
	slots  []*slot
	byName map[string]*slot
	log    *zap.Logger
}

func newScheduler(w *World) *Scheduler {
	return &Scheduler{
		world:  w,
		byName: make(map[string]*slot),
		log:    w.Log.Named("scheduler"),
	}
}

// Register appends sys in Stopped state
func (s *Scheduler) Register(sys System) error {
	name := sys.Name()
	if _, exists := s.byName[name]; exists {
		s.log.Error("duplicate system", zap.String("system", name))
		return eris.Wrapf(ErrDuplicateSystem, "register %q", name)
	}
	sl := &slot{sys: sys, state: Stopped}
	s.slots = append(s.slots, sl)
	s.byName[name] = sl
	return nil
}

// MustRegister panics on duplicate names, for static wiring at startup
func (s *Scheduler) MustRegister(systems ...System) {
	for _, sys := range systems {
		if err := s.Register(sys); err != nil {
			panic(err)
		}
	}
}

func (s *Scheduler) lookup(name string) (*slot, error) {
	sl, ok := s.byName[name]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownSystem, "%q", name)
	}
	return sl, nil
}

// Start runs OnInit and marks the system Started
// Starting a Started system is a no-op; on OnInit error the system stays Stopped
func (s *Scheduler) Start(name string) error {
	sl, err := s.lookup(name)
	if err != nil {
		return err
	}
	if sl.state == Started {
		return nil
	}
	if err := sl.sys.OnInit(); err != nil {
		// Drop whatever the failed init managed to subscribe
		s.world.Bus.UnsubscribeOwner(name)
		s.log.Error("system init failed", zap.String("system", name), zap.Error(err))
		return eris.Wrapf(err, "start %q", name)
	}
	sl.state = Started
	s.log.Debug("system started", zap.String("system", name))
	s.world.Bus.Emit(event.Event{Type: event.SystemStarted, Payload: event.SystemPayload{Name: name}})
	return nil
}

// Stop runs OnClose, removes the system's subscriptions, marks it Stopped
// Stopping a Stopped system is a no-op
func (s *Scheduler) Stop(name string) error {
	sl, err := s.lookup(name)
	if err != nil {
		return err
	}
	if sl.state == Stopped {
		return nil
	}
	sl.sys.OnClose()
	n := s.world.Bus.UnsubscribeOwner(name)
	sl.state = Stopped
	s.log.Debug("system stopped", zap.String("system", name), zap.Int("listeners", n))
	s.world.Bus.Emit(event.Event{Type: event.SystemStopped, Payload: event.SystemPayload{Name: name}})
	return nil
}

// StartAll starts every system in registration order
// On failure, systems started by this call are stopped in reverse order
func (s *Scheduler) StartAll() error {
	var started []string
	for _, sl := range s.slots {
		name := sl.sys.Name()
		if sl.state == Started {
			continue
		}
		if err := s.Start(name); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				_ = s.Stop(started[i])
			}
			return err
		}
		started = append(started, name)
	}
	return nil
}

// StopAll stops every Started system in reverse registration order
func (s *Scheduler) StopAll() {
	for i := len(s.slots) - 1; i >= 0; i-- {
		_ = s.Stop(s.slots[i].sys.Name())
	}
}

// State returns the lifecycle state of name
func (s *Scheduler) State(name string) (State, error) {
	sl, err := s.lookup(name)
	if err != nil {
		return Stopped, err
	}
	return sl.state, nil
}

// Names returns system names in registration order
func (s *Scheduler) Names() []string {
	names := make([]string, len(s.slots))
	for i, sl := range s.slots {
		names[i] = sl.sys.Name()
	}
	return names
}

// Update calls OnUpdate on a single system iff it is Started
func (s *Scheduler) Update(name string, elapsed time.Duration) error {
	sl, err := s.lookup(name)
	if err != nil {
		return err
	}
	if sl.state == Started {
		sl.sys.OnUpdate(elapsed)
	}
	return nil
}

// Run executes one frame: drain queued input into the bus, update Started
// systems in registration order, flush deferred destroys, advance the frame
// A system started or stopped mid-frame takes effect when the loop reaches it
func (s *Scheduler) Run(elapsed time.Duration) {
	w := s.world
	w.Bus.SetFrame(w.frame)
	if n := w.Bus.Drain(w.Queue); n > 0 {
		w.metrics.eventsDrained.Add(int64(n))
	}

	for i := 0; i < len(s.slots); i++ {
		if sl := s.slots[i]; sl.state == Started {
			sl.sys.OnUpdate(elapsed)
		}
	}

	w.Registry.FlushDestroyed()
	w.frame++
	w.metrics.frame.Store(w.frame)
	w.metrics.entities.Store(int64(w.Registry.Count()))
}
