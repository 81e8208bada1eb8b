package component

import (
	"github.com/lixenwraith/sgf/asset"
	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/engine"
	"github.com/lixenwraith/sgf/render"
)

// Sprite draws a frame from a sprite sheet, or a text glyph when no sheet is set
type Sprite struct {
	engine.Component

	Sheet *asset.SpriteSheet
	Frame int    // index into Sheet, wraps
	Glyph string // used when Sheet is nil

	// FrameTicks advances Frame once every FrameTicks updates, 0 disables animation
	FrameTicks uint64

	lastFrame any
	lastGlyph any
}

// NewSprite creates a sprite sized to one sheet frame
// Sizes are in surface units, scaled from the frame's cell size by metrics
func NewSprite(x, y float64, sheet *asset.SpriteSheet, metrics render.CellMetrics) *Sprite {
	s := &Sprite{Component: engine.NewComponent(x, y, 0, 0), Sheet: sheet}
	if sheet != nil {
		s.Width = float64(sheet.CellsWide) * metrics.Width
		s.Height = float64(sheet.CellsHigh) * metrics.Height
	}
	return s
}

// NewGlyphSprite creates a one-cell white sprite drawn as text
func NewGlyphSprite(x, y float64, glyph string, metrics render.CellMetrics) *Sprite {
	s := &Sprite{Component: engine.NewComponent(x, y, metrics.Width, metrics.Height), Glyph: glyph}
	s.Color = core.RGBWhite
	return s
}

// Update advances the animation frame
func (s *Sprite) Update(tick uint64) {
	if s.FrameTicks == 0 || s.Sheet == nil || s.Sheet.Len() < 2 {
		return
	}
	if tick%s.FrameTicks == 0 {
		s.Frame++
	}
}

// Render synchronizes base attributes then the frame or glyph
func (s *Sprite) Render(surf render.Surface) error {
	if err := s.Component.Render(surf); err != nil {
		return err
	}
	if s.Sheet != nil {
		// An empty sheet has nothing to draw
		if s.Sheet.Len() == 0 {
			return nil
		}
		return s.SyncAttr(surf, render.AttrFrame, s.Sheet.Frame(s.Frame), &s.lastFrame)
	}
	return s.SyncAttr(surf, render.AttrGlyph, s.Glyph, &s.lastGlyph)
}
