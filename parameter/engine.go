package parameter

import "time"

// Loop timing
const (
	// TickInterval is the default fixed update interval (~33 ticks per second)
	TickInterval = 30 * time.Millisecond

	// MinTickInterval guards against busy loops from bad configuration
	MinTickInterval = time.Millisecond
)

// Registry sizing
const (
	// RegistryInitialCapacity preallocates the draw-order snapshot
	RegistryInitialCapacity = 256
)

// Draw order, higher values are on top
const (
	ZIndexBackground = 0
	ZIndexParticle   = 1
	ZIndexCursor     = 2
)
