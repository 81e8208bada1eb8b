package component

import (
	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/engine"
)

// Rect is a solid colored rectangle
// Shape behavior (color sync) is part of the base component
type Rect struct {
	engine.Component
}

// NewRect creates a rectangle with top-left at x, y
func NewRect(x, y, width, height float64, color core.RGB) *Rect {
	r := &Rect{Component: engine.NewComponent(x, y, width, height)}
	r.Color = color
	return r
}
