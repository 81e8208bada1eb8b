package render

import "github.com/lixenwraith/sgf/core"

// Cell is one terminal cell of a sprite frame
// NoBg cells keep the surface background behind the glyph
type Cell struct {
	Rune        rune
	Fg, Bg      core.RGB
	NoBg        bool
	Transparent bool
}

// Bitmap is a rectangular block of cells, row-major
type Bitmap struct {
	Width, Height int
	Cells         []Cell
}

// NewBitmap allocates a fully transparent bitmap
func NewBitmap(width, height int) *Bitmap {
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Transparent = true
	}
	return &Bitmap{Width: width, Height: height, Cells: cells}
}

// At returns the cell at x, y; out of bounds reads are transparent
func (b *Bitmap) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Cell{Transparent: true}
	}
	return b.Cells[y*b.Width+x]
}

// Set writes the cell at x, y, out of bounds writes are dropped
func (b *Bitmap) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Cells[y*b.Width+x] = c
}
