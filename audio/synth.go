package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Player plays named one-shot sounds
type Player interface {
	Play(name string)
}

// Nop discards every request
type Nop struct{}

func (Nop) Play(string) {}

// maxVoices bounds concurrently mixed one-shots
const maxVoices = 16

// Synth renders voices through the system speaker
type Synth struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	log         *zap.Logger

	played  atomic.Int64
	dropped atomic.Int64
}

// NewSynth creates an uninitialized synth; Init opens the device
func NewSynth(sampleRate int, volume float64, log *zap.Logger) *Synth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synth{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
		log:    log.Named("audio"),
	}
}

// Init opens the speaker and starts the mixer
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	s.log.Info("speaker ready", zap.Int("sample_rate", int(s.rate)))
	return nil
}

// Play queues the voice for name; unknown names and a full mixer drop the request
func (s *Synth) Play(name string) {
	voice, ok := Sounds[name]
	if !ok {
		s.log.Debug("unknown sound", zap.String("sound", name))
		s.dropped.Add(1)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}

	speaker.Lock()
	full := s.mixer.Len() >= maxVoices
	if !full {
		s.mixer.Add(voice.Render(s.rate, s.volume))
	}
	speaker.Unlock()

	if full {
		s.dropped.Add(1)
		return
	}
	s.played.Add(1)
}

// Played returns the number of voices handed to the mixer
func (s *Synth) Played() int64 {
	return s.played.Load()
}

// Dropped returns the number of rejected requests
func (s *Synth) Dropped() int64 {
	return s.dropped.Load()
}

// Close silences the mixer and releases the device
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Recorder collects requests, for headless runs and tests
type Recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *Recorder) Play(name string) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
}

// Played returns a copy of the recorded names in order
func (r *Recorder) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
