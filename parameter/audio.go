package parameter

import "time"

// Audio settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer, trades latency for underruns
	AudioBufferDuration = 100 * time.Millisecond
)

// Spawn cue, a short sine blip pitched by particle size
const (
	BlipDuration = 40 * time.Millisecond
	BlipAttack   = 2 * time.Millisecond
	BlipRelease  = 30 * time.Millisecond
	BlipBaseFreq = 660.0
	BlipFreqSpan = 440.0

	// BlipMinInterval rate limits cues, pointer motion spawns every event
	BlipMinInterval = 60 * time.Millisecond
)
