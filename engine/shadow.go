package engine

import "github.com/lixenwraith/sgf/core"

// Shadow is the last-rendered copy of an entity's visual attributes
// Written only by the render phase, right after a successful surface write;
// the render phase writes an attribute only when it differs from its shadow
type Shadow struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64
	Opacity       float64 // clamped value actually written
	Color         core.RGB
	ZIndex        int

	// Stacked is false until the stack order write succeeds
	Stacked bool
}

// shadowOf captures the current visual state of c as it would be written
func shadowOf(c *Component) Shadow {
	return Shadow{
		X:        c.X,
		Y:        c.Y,
		Width:    c.Width,
		Height:   c.Height,
		Rotation: c.Rotation,
		Opacity:  clampOpacity(c.Opacity),
		Color:    c.Color,
		ZIndex:   c.ZIndex,
	}
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
