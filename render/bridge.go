package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sgf/core"
)

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// TcellToRGB converts tcell.Color to RGB, ColorDefault maps to fallback
func TcellToRGB(c tcell.Color, fallback core.RGB) core.RGB {
	if c == tcell.ColorDefault {
		return fallback
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}
