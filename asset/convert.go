package asset

import (
	"image"
	"image/color"

	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/render"
)

// quadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var quadrantChars = [16]rune{
	' ', '▘', '▝', '▀',
	'▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜',
	'▄', '▙', '▟', '█',
}

// alphaThreshold below which a sampled pixel counts as transparent
const alphaThreshold = 0x8000

type sample struct {
	rgb    core.RGB
	opaque bool
}

// convertRegion renders rect of img into a bitmap of cols x rows quadrant cells
// Each cell covers a 2x2 sample grid; transparent samples keep the surface background
func convertRegion(img image.Image, rect image.Rectangle, cols, rows int) *render.Bitmap {
	bm := render.NewBitmap(cols, rows)
	srcW, srcH := rect.Dx(), rect.Dy()
	gridW, gridH := cols*2, rows*2

	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var px [4]sample
			visible := false
			for i, off := range offsets {
				sx := rect.Min.X + ((x*2+off[0])*srcW+srcW/2)/gridW
				sy := rect.Min.Y + ((y*2+off[1])*srcH+srcH/2)/gridH
				if sx >= rect.Max.X {
					sx = rect.Max.X - 1
				}
				if sy >= rect.Max.Y {
					sy = rect.Max.Y - 1
				}
				px[i] = toSample(img.At(sx, sy))
				visible = visible || px[i].opaque
			}
			if !visible {
				continue
			}
			bm.Set(x, y, quadrantCell(px))
		}
	}
	return bm
}

// quadrantCell picks the pattern and colors with least squared error
// With transparent samples the opaque ones become the foreground over no background
func quadrantCell(px [4]sample) render.Cell {
	mask := 0
	for i, p := range px {
		if p.opaque {
			mask |= 1 << i
		}
	}
	if mask != 0xF {
		var rgb [4]core.RGB
		for i, p := range px {
			rgb[i] = p.rgb
		}
		fg, _, _ := patternColors(rgb, mask)
		return render.Cell{Rune: quadrantChars[mask], Fg: fg, NoBg: true}
	}

	var rgb [4]core.RGB
	for i, p := range px {
		rgb[i] = p.rgb
	}
	bestErr := int(^uint(0) >> 1)
	var best render.Cell
	for pattern := 0; pattern < 16; pattern++ {
		fg, bg, err := patternColors(rgb, pattern)
		if err < bestErr {
			bestErr = err
			best = render.Cell{Rune: quadrantChars[pattern], Fg: fg, Bg: bg}
		}
	}
	return best
}

// patternColors averages each group and returns the total squared error
func patternColors(px [4]core.RGB, pattern int) (fg, bg core.RGB, total int) {
	var fs, bs [3]int
	var fc, bc int
	for i := 0; i < 4; i++ {
		if pattern&(1<<i) != 0 {
			fs[0] += int(px[i].R)
			fs[1] += int(px[i].G)
			fs[2] += int(px[i].B)
			fc++
		} else {
			bs[0] += int(px[i].R)
			bs[1] += int(px[i].G)
			bs[2] += int(px[i].B)
			bc++
		}
	}
	if fc > 0 {
		fg = core.RGB{R: uint8(fs[0] / fc), G: uint8(fs[1] / fc), B: uint8(fs[2] / fc)}
	}
	if bc > 0 {
		bg = core.RGB{R: uint8(bs[0] / bc), G: uint8(bs[1] / bc), B: uint8(bs[2] / bc)}
	}
	for i := 0; i < 4; i++ {
		target := bg
		if pattern&(1<<i) != 0 {
			target = fg
		}
		total += distanceSq(px[i], target)
	}
	return fg, bg, total
}

func distanceSq(a, b core.RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// toSample un-premultiplies alpha
func toSample(c color.Color) sample {
	r, g, b, a := c.RGBA()
	if a < alphaThreshold {
		return sample{}
	}
	return sample{
		rgb: core.RGB{
			R: uint8((r * 0xff) / a),
			G: uint8((g * 0xff) / a),
			B: uint8((b * 0xff) / a),
		},
		opaque: true,
	}
}
