package render

import "math"

// CellMetrics maps surface units to terminal cells
// Terminal cells are roughly twice as tall as wide
type CellMetrics struct {
	Width, Height float64
}

// DefaultCellMetrics approximates an 8x16 pixel cell
var DefaultCellMetrics = CellMetrics{Width: 8, Height: 16}

// ToCell returns the cell containing surface point x, y
func (m CellMetrics) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / m.Width)), int(math.Floor(y / m.Height))
}

// ToSurface returns the surface point at the center of a cell
func (m CellMetrics) ToSurface(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.Width, (float64(row) + 0.5) * m.Height
}

// Span returns the cell range [first, last] covered by [pos, pos+size), at least one cell
func (m CellMetrics) Span(pos, size, unit float64) (int, int) {
	first := int(math.Floor(pos / unit))
	last := int(math.Ceil((pos+size)/unit)) - 1
	if last < first {
		last = first
	}
	return first, last
}
