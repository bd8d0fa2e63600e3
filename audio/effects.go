package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// shape returns the sample function for a wave, phase in [0, 1)
func shape(w WaveType, seed int64) func(phase float64) float64 {
	switch w {
	case WaveSquare:
		return func(p float64) float64 {
			if p < 0.5 {
				return 1
			}
			return -1
		}
	case WaveSaw:
		return func(p float64) float64 { return 2*p - 1 }
	case WaveNoise:
		rng := rand.New(rand.NewSource(seed))
		return func(float64) float64 { return rng.Float64()*2 - 1 }
	default:
		return func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	}
}

// NewOscillator creates a mono wave of fixed length duplicated to both channels
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	sample := shape(wave, int64(freq*1000)+1)
	step := freq / float64(rate)
	left := rate.N(duration)
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		n := min(len(samples), left)
		for i := 0; i < n; i++ {
			v := sample(phase)
			samples[i] = [2]float64{v, v}
			phase += step
			phase -= math.Floor(phase)
		}
		left -= n
		return n, true
	})
}

// gainCurve is a linear attack, flat sustain, linear release over total samples
type gainCurve struct {
	attack, release, total int
}

func (c gainCurve) at(pos int) float64 {
	switch {
	case c.attack > 0 && pos < c.attack:
		return float64(pos) / float64(c.attack)
	case c.release > 0 && pos >= c.total-c.release:
		return math.Max(0, float64(c.total-pos)/float64(c.release))
	}
	return 1
}

type enveloped struct {
	src   beep.Streamer
	curve gainCurve
	pos   int
}

// NewEnvelope shapes s over duration with linear attack and release
// Attack wins when attack and release overlap
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &enveloped{src: s, curve: gainCurve{attack: att, release: rel, total: total}}
}

func (e *enveloped) Stream(samples [][2]float64) (int, bool) {
	if rest := e.curve.total - e.pos; rest < len(samples) {
		if rest <= 0 {
			return 0, false
		}
		samples = samples[:rest]
	}
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.curve.at(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *enveloped) Err() error { return e.src.Err() }

// withGain scales s linearly; zero or less is silent
// effects.Volume works in log2 units
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Note is one shaped oscillator
type Note struct {
	Freq     float64
	Wave     WaveType
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
}

// Voice is a sequence of notes played back to back
type Voice []Note

func note(freq float64, wave WaveType, dur, attack, release int) Note {
	return Note{
		Freq:     freq,
		Wave:     wave,
		Duration: time.Duration(dur) * time.Millisecond,
		Attack:   time.Duration(attack) * time.Millisecond,
		Release:  time.Duration(release) * time.Millisecond,
	}
}

// Sounds maps palette sound names to voices; "place" and "break" are the fallbacks
var Sounds = map[string]Voice{
	"soft":   {note(220, WaveNoise, 60, 5, 50)},
	"hard":   {note(140, WaveSquare, 50, 2, 40)},
	"hollow": {note(330, WaveSine, 90, 5, 70)},
	"splash": {note(0, WaveNoise, 120, 20, 90)},
	"place":  {note(660, WaveSine, 40, 2, 30)},
	"break":  {note(180, WaveSaw, 40, 2, 30), note(120, WaveSaw, 60, 2, 50)},
}

// Render builds a finite streamer for v at rate and linear volume
func (v Voice) Render(rate beep.SampleRate, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, len(v))
	for i, n := range v {
		parts[i] = NewEnvelope(NewOscillator(n.Freq, n.Duration, n.Wave, rate), n.Duration, n.Attack, n.Release, rate)
	}
	return withGain(beep.Seq(parts...), volume)
}

// Duration is the total length of v
func (v Voice) Duration() time.Duration {
	var d time.Duration
	for _, n := range v {
		d += n.Duration
	}
	return d
}
