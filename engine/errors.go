package engine

import "errors"

var (
	// ErrNilEntity is returned when registering a nil entity
	ErrNilEntity = errors.New("engine: nil entity")

	// ErrDestroyed is returned when registering or rendering an entity whose handle was released
	ErrDestroyed = errors.New("engine: entity destroyed")

	// ErrNotRendered is returned for handle operations before the first render
	ErrNotRendered = errors.New("engine: entity has no surface handle")

	// ErrRunning is returned by Start on a running engine
	ErrRunning = errors.New("engine: already running")

	// ErrStopped is returned by Start after Stop, stopping is terminal
	ErrStopped = errors.New("engine: stopped")
)
