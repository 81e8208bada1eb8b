package event

// Name identifies a normalized input event
type Name string

// Input vocabulary, device events of any origin map onto these names
const (
	PointerDown Name = "pointerdown"
	PointerUp   Name = "pointerup"
	PointerMove Name = "pointermove"
	TouchStart  Name = "touchstart"
	TouchMove   Name = "touchmove"
	KeyDown     Name = "keydown"
	KeyUp       Name = "keyup"
)

// Names lists the recognized vocabulary in a stable order
var Names = []Name{
	PointerDown, PointerUp, PointerMove,
	TouchStart, TouchMove,
	KeyDown, KeyUp,
}

// Valid reports whether n is part of the vocabulary
func (n Name) Valid() bool {
	switch n {
	case PointerDown, PointerUp, PointerMove, TouchStart, TouchMove, KeyDown, KeyUp:
		return true
	}
	return false
}

// IsPointer reports events that carry a pointer or touch position
func (n Name) IsPointer() bool {
	switch n {
	case PointerDown, PointerUp, PointerMove, TouchStart, TouchMove:
		return true
	}
	return false
}

// Point is a position in surface coordinates
type Point struct {
	X, Y float64
}

// Input is the payload delivered to listeners
// X/Y hold the pointer position, or the primary touch for touch events
type Input struct {
	Name    Name
	X, Y    float64
	Key     string
	Touches []Point
}

// NewTouch builds a touch event, X/Y taken from the first touch point
func NewTouch(name Name, touches ...Point) Input {
	ev := Input{Name: name, Touches: touches}
	if len(touches) > 0 {
		ev.X, ev.Y = touches[0].X, touches[0].Y
	}
	return ev
}
