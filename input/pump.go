package input

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/event"
)

// ErrQuit is returned by Pump.Run when the user pressed a quit key
var ErrQuit = eris.New("quit requested")

// expireInterval is how often held keys are checked for release
const expireInterval = 50 * time.Millisecond

// Poller is the blocking event source, satisfied by tcell.Screen
type Poller interface {
	PollEvent() tcell.Event
}

// Pump moves terminal events onto the world queue from its own goroutine
type Pump struct {
	src   Poller
	queue *event.Queue
	tr    *Translator
	log   *zap.Logger
	now   func() time.Time
}

func NewPump(src Poller, queue *event.Queue, tr *Translator, log *zap.Logger) *Pump {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pump{src: src, queue: queue, tr: tr, log: log, now: time.Now}
}

// Run forwards events until ctx is cancelled, the source closes, or a quit key arrives
// The source is unblocked by finalizing the screen
func (p *Pump) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)

	core.Go(func() {
		defer close(events)
		for {
			ev := p.src.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	})

	ticker := time.NewTicker(expireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				p.log.Debug("event source closed")
				return nil
			}
			out, quit := p.tr.Translate(ev, p.now())
			if quit {
				p.push(p.tr.ReleaseAll())
				return ErrQuit
			}
			p.push(out)

		case <-ticker.C:
			p.push(p.tr.Expire(p.now()))
		}
	}
}

func (p *Pump) push(events []event.Event) {
	for _, ev := range events {
		p.queue.Push(ev)
	}
}
