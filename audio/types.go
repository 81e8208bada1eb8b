package audio

// SoundType identifies a sound cue
type SoundType int

const (
	SoundBlip  SoundType = iota // square particle spawned
	SoundSpark                  // spark particle spawned
	soundTypeCount
)

func (t SoundType) String() string {
	switch t {
	case SoundBlip:
		return "blip"
	case SoundSpark:
		return "spark"
	default:
		return "unknown"
	}
}
