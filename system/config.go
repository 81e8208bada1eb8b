package system

import (
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/sgf/parameter"
)

// SpawnConfig tunes the default particle kind
type SpawnConfig struct {
	Lifetime     uint64  // ticks
	OpacityDecay float64 // per tick
	Seed         uint64  // 0 seeds from the clock
}

// DefaultSpawnConfig returns the default spawn configuration
func DefaultSpawnConfig() *SpawnConfig {
	return &SpawnConfig{
		Lifetime:     parameter.ParticleLifetime,
		OpacityDecay: parameter.ParticleOpacityDecay,
	}
}

// LoadSpawnConfig loads spawn configuration from environment variables
func LoadSpawnConfig() *SpawnConfig {
	cfg := DefaultSpawnConfig()

	if lifetime := os.Getenv("SGF_PARTICLE_LIFETIME"); lifetime != "" {
		if val, err := strconv.ParseUint(lifetime, 10, 64); err == nil && val > 0 {
			cfg.Lifetime = val
		}
	}

	if decay := os.Getenv("SGF_OPACITY_DECAY"); decay != "" {
		if val, err := strconv.ParseFloat(decay, 64); err == nil && val >= 0 {
			cfg.OpacityDecay = val
		}
	}

	return cfg
}

func (c *SpawnConfig) seed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
