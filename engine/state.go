package engine

// State is the loop driver phase
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateUpdating
	StateRendering
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateUpdating:
		return "updating"
	case StateRendering:
		return "rendering"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
