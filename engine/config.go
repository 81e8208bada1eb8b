package engine

import (
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/sgf/parameter"
)

// Config holds loop driver settings
type Config struct {
	TickInterval time.Duration
}

// DefaultConfig returns the default loop configuration
func DefaultConfig() *Config {
	return &Config{
		TickInterval: parameter.TickInterval,
	}
}

// LoadConfig loads loop configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	// Tick interval in milliseconds
	if ms := os.Getenv("SGF_TICK_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val > 0 {
			cfg.TickInterval = time.Duration(val) * time.Millisecond
		}
	}

	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	if c.TickInterval < parameter.MinTickInterval {
		c.TickInterval = parameter.MinTickInterval
	}
}
