package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lixenwraith/sgf/parameter"
	"github.com/lixenwraith/sgf/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a fixed length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

// NewOscillator creates a wave generator that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewFastRand(uint64(freq*1000) + 1),
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
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain, zero gain is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// blipFreq maps a particle size onto the cue pitch, smaller is higher
func blipFreq(size float64) float64 {
	t := (size - parameter.ParticleSizeMin) / (parameter.ParticleSizeMax - parameter.ParticleSizeMin)
	t = min(max(t, 0), 1)
	return parameter.BlipBaseFreq + parameter.BlipFreqSpan*(1-t)
}

// CreateBlipSound generates a short sine blip pitched by size
func CreateBlipSound(cfg *AudioConfig, size float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(blipFreq(size), parameter.BlipDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, parameter.BlipDuration, parameter.BlipAttack, parameter.BlipRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundBlip]*cfg.MasterVolume)
}

// CreateSparkSound generates a short noise tick layered over a high sine partial
func CreateSparkSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	dur := parameter.BlipDuration

	noise := NewEnvelope(NewOscillator(0, dur, WaveNoise, rate), dur, parameter.BlipAttack, parameter.BlipRelease, rate)

	// SineTone rejects frequencies at or above Nyquist
	var partial beep.Streamer
	if sine, err := generators.SineTone(rate, parameter.BlipBaseFreq*2); err == nil {
		partial = beep.Take(rate.N(dur), sine)
	} else {
		partial = NewOscillator(parameter.BlipBaseFreq*2, dur, WaveSquare, rate)
	}
	tone := NewEnvelope(partial, dur, parameter.BlipAttack, parameter.BlipRelease, rate)

	mixed := beep.Mix(newVolume(noise, 0.6), newVolume(tone, 0.2))
	return newVolume(mixed, cfg.EffectVolumes[SoundSpark]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for a cue, nil for unknown types
func GetSoundEffect(t SoundType, cfg *AudioConfig, size float64) beep.Streamer {
	switch t {
	case SoundBlip:
		return CreateBlipSound(cfg, size)
	case SoundSpark:
		return CreateSparkSound(cfg)
	default:
		return nil
	}
}
