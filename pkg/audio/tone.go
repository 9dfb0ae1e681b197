// Package audio turns simulation events into short synthesized tones.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform is an oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// silence is the gain the decay envelope ramps toward. An exponential ramp
// cannot reach zero.
const silence = 0.0001

// Tone describes one feedback blip: a fixed-frequency oscillator played for
// Duration whose gain falls exponentially from Volume to near silence over
// Decay.
type Tone struct {
	Wave     Waveform
	Freq     float64
	Duration time.Duration
	Volume   float64
	Decay    time.Duration
}

// Gain returns the envelope value t into the tone.
func (t Tone) Gain(at time.Duration) float64 {
	if t.Volume <= 0 {
		return 0
	}
	if t.Decay <= 0 || at >= t.Decay {
		return math.Min(t.Volume, silence)
	}
	progress := float64(at) / float64(t.Decay)
	return t.Volume * math.Pow(silence/t.Volume, progress)
}

// Streamer renders the tone at rate, scaled by master volume.
func (t Tone) Streamer(rate beep.SampleRate, master float64) beep.Streamer {
	osc := &oscillator{tone: t, rate: rate, total: rate.N(t.Duration)}
	return newVolume(osc, master)
}

type oscillator struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		at := o.rate.D(o.position)
		val := sample(o.tone.Wave, o.phase) * o.tone.Gain(at)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.tone.Freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sample evaluates w at phase in [0,1).
func sample(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// newVolume applies a linear volume; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
