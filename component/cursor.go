package component

import (
	"github.com/lixenwraith/sgf/event"
	"github.com/lixenwraith/sgf/parameter"
)

// PointerSource reports the current pointer position
type PointerSource interface {
	Pointer() event.Point
}

// Cursor is a sprite that follows the pointer
// Position is overwritten on every update; input only moves the tracked pointer
type Cursor struct {
	*Sprite
	pointer PointerSource
}

// NewCursor wraps sprite so it tracks src, drawn above particles
func NewCursor(sprite *Sprite, src PointerSource) *Cursor {
	sprite.ZIndex = parameter.ZIndexCursor
	return &Cursor{Sprite: sprite, pointer: src}
}

// Update moves the cursor to the pointer
func (c *Cursor) Update(tick uint64) {
	p := c.pointer.Pointer()
	c.X, c.Y = p.X, p.Y
	c.Sprite.Update(tick)
}

// Position returns the cursor position as of the last update
func (c *Cursor) Position() event.Point {
	return event.Point{X: c.X, Y: c.Y}
}
