package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

// drain streams s to exhaustion, returns sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	total, peak := 0, 0.0
	for guard := 0; guard < 10000; guard++ {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			require.Equal(t, buf[i][0], buf[i][1], "channels must match")
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, testRate)
	n, peak := drain(t, osc)
	assert.Equal(t, testRate.N(100*time.Millisecond), n)
	assert.InDelta(t, 1.0, peak, 0.01)
}

func TestSquareWaveLevels(t *testing.T) {
	osc := NewOscillator(100, 20*time.Millisecond, WaveSquare, testRate)
	buf := make([][2]float64, 64)
	n, ok := osc.Stream(buf)
	require.True(t, ok)
	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, math.Abs(buf[i][0]))
	}
}

func TestEnvelopeRamps(t *testing.T) {
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)
	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	assert.Equal(t, 1.0, buf[n/2][0], "sustain at full level")
	assert.Less(t, buf[n-1][0], 0.05, "release fades out")
}

func TestVoicesRender(t *testing.T) {
	for name, voice := range Sounds {
		t.Run(name, func(t *testing.T) {
			n, peak := drain(t, voice.Render(testRate, 0.5))
			assert.Equal(t, testRate.N(voice.Duration()), n)
			assert.LessOrEqual(t, peak, 0.5+1e-9)
		})
	}
}

func TestSilentVolume(t *testing.T) {
	_, peak := drain(t, Sounds["hard"].Render(testRate, 0))
	assert.Zero(t, peak)
}

func TestSynthWithoutDevice(t *testing.T) {
	s := NewSynth(int(testRate), 0.3, nil)
	s.Play("hard")
	assert.Zero(t, s.Played(), "uninitialized synth plays nothing")

	s.Play("no-such-sound")
	assert.Equal(t, int64(1), s.Dropped())
	s.Close()
}

func TestRecorderAndNop(t *testing.T) {
	var p Player = Nop{}
	p.Play("hard")

	r := &Recorder{}
	p = r
	p.Play("place")
	p.Play("break")
	assert.Equal(t, []string{"place", "break"}, r.Played())
}
