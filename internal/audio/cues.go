package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/lungbird/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// Cue lengths
const (
	flapDuration  = 90 * time.Millisecond
	scoreNote     = 70 * time.Millisecond
	crashDuration = 350 * time.Millisecond
	musicNote     = 200 * time.Millisecond
)

// musicNotes is one period of the background loop, an A minor arpeggio.
var musicNotes = []float64{220, 262, 330, 440, 392, 330, 262, 247}

// oscillator generates a fixed-length wave with an optional linear sweep.
type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a wave generator that ends after duration.
func NewOscillator(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a stream linearly to silence over its length.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: rate.N(duration)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// FlapCue is a short rising blip.
func FlapCue(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(440, 2400, flapDuration, WaveSquare, rate)
	return newVolume(newDecay(osc, flapDuration, rate), vol*0.5)
}

// ScoreCue is a two-note chime.
func ScoreCue(rate beep.SampleRate, vol float64) beep.Streamer {
	n1 := newDecay(NewOscillator(988, 0, scoreNote, WaveSine, rate), scoreNote, rate)
	n2 := newDecay(NewOscillator(1319, 0, scoreNote*2, WaveSine, rate), scoreNote*2, rate)
	return newVolume(beep.Seq(n1, n2), vol)
}

// CrashCue is a decaying noise burst.
func CrashCue(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewOscillator(1, 0, crashDuration, WaveNoise, rate)
	return newVolume(newDecay(noise, crashDuration, rate), vol)
}

// musicPeriod is the number of samples in one pass of the music loop.
func musicPeriod(rate beep.SampleRate) int {
	return rate.N(musicNote) * len(musicNotes)
}

// MusicLoop renders one period of the background melody into a buffer and
// loops it until the mixer drops it.
func MusicLoop(rate beep.SampleRate, vol float64) beep.Streamer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	for _, freq := range musicNotes {
		buf.Append(newDecay(NewOscillator(freq, 0, musicNote, WaveSine, rate), musicNote, rate))
	}
	return newVolume(beep.Loop(-1, buf.Streamer(0, buf.Len())), vol)
}

// CueFor returns the cue for an event kind, or nil when the event is silent.
func CueFor(kind core.EventKind, rate beep.SampleRate, vol float64) beep.Streamer {
	switch kind {
	case core.EventStarted, core.EventImpulse:
		return FlapCue(rate, vol)
	case core.EventObstaclePassed:
		return ScoreCue(rate, vol)
	case core.EventCollision:
		return CrashCue(rate, vol)
	default:
		return nil
	}
}
