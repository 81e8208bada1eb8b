package audio

import (
	"testing"
	"time"

	"github.com/lixenwraith/sgf/parameter"
)

// fakeClock drives rate limiting deterministically
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestManager returns a manager that mixes without opening the speaker
func newTestManager(cfg *AudioConfig) (*SoundManager, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	sm := NewSoundManager(cfg)
	sm.now = clock.now
	sm.initialized = true
	return sm, clock
}

func TestPlayRateLimited(t *testing.T) {
	sm, clock := newTestManager(nil)

	if !sm.Play(SoundBlip, 4) {
		t.Fatal("first cue dropped")
	}
	if sm.Play(SoundBlip, 4) {
		t.Error("cue within interval played")
	}
	if !sm.Play(SoundSpark, 1) {
		t.Error("other cue type shares the limiter")
	}

	clock.advance(parameter.BlipMinInterval)
	if !sm.Play(SoundBlip, 4) {
		t.Error("cue after interval dropped")
	}
	if got := sm.Active(); got != 3 {
		t.Errorf("active = %d, want 3", got)
	}
}

func TestPlaySuppressed(t *testing.T) {
	t.Run("uninitialized", func(t *testing.T) {
		sm := NewSoundManager(nil)
		if sm.Play(SoundBlip, 4) {
			t.Error("played without speaker")
		}
	})

	t.Run("muted", func(t *testing.T) {
		sm, _ := newTestManager(nil)
		sm.SetMuted(true)
		if sm.Play(SoundBlip, 4) || !sm.Muted() {
			t.Error("muted manager played")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := DefaultAudioConfig()
		cfg.Enabled = false
		sm := NewSoundManager(cfg)
		if err := sm.Initialize(); err != nil {
			t.Fatalf("disabled init: %v", err)
		}
		if sm.Play(SoundBlip, 4) {
			t.Error("disabled manager played")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		sm, _ := newTestManager(nil)
		if sm.Play(SoundType(-1), 4) || sm.Play(soundTypeCount, 4) {
			t.Error("unknown type played")
		}
	})
}

func TestLoadAudioConfig(t *testing.T) {
	tests := []struct {
		name    string
		enabled string
		volume  string
		wantOn  bool
		wantVol float64
	}{
		{"defaults", "", "", true, 0.5},
		{"disabled", "false", "", false, 0.5},
		{"volume", "", "80", true, 0.8},
		{"clamped high", "", "250", true, 1},
		{"clamped low", "", "-10", true, 0},
		{"garbage", "maybe", "loud", true, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SGF_AUDIO_ENABLED", tt.enabled)
			t.Setenv("SGF_MASTER_VOLUME", tt.volume)
			cfg := LoadAudioConfig()
			if cfg.Enabled != tt.wantOn || cfg.MasterVolume != tt.wantVol {
				t.Errorf("cfg = %v/%v, want %v/%v", cfg.Enabled, cfg.MasterVolume, tt.wantOn, tt.wantVol)
			}
		})
	}
}
