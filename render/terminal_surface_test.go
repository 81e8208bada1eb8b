package render

import (
	"errors"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sgf/core"
)

func newSimSurface(t *testing.T, w, h int) (*TerminalSurface, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return NewTerminalSurface(screen, CellMetrics{Width: 1, Height: 1}, core.RGBBlack), screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestTerminalSurfaceDrawsRect(t *testing.T) {
	s, screen := newSimSurface(t, 10, 5)

	_, err := s.CreateHandle(Attrs{
		AttrX: 2.0, AttrY: 1.0,
		AttrWidth: 3.0, AttrHeight: 2.0,
		AttrOpacity: 1.0,
		AttrColor:   core.RGB{R: 255},
	})
	if err != nil {
		t.Fatalf("CreateHandle: %v", err)
	}

	if !s.Present() {
		t.Fatal("Present() = false on first frame")
	}

	for y := 1; y <= 2; y++ {
		for x := 2; x <= 4; x++ {
			if got := runeAt(screen, x, y); got != '█' {
				t.Errorf("cell (%d,%d) = %q, want full block", x, y, got)
			}
		}
	}
	if got := runeAt(screen, 5, 1); got != ' ' {
		t.Errorf("cell outside rect = %q", got)
	}
}

func TestTerminalSurfacePresentOnlyWhenDirty(t *testing.T) {
	s, _ := newSimSurface(t, 10, 5)
	h, _ := s.CreateHandle(Attrs{AttrWidth: 1.0, AttrHeight: 1.0, AttrOpacity: 1.0})

	if !s.Present() {
		t.Fatal("first Present() = false")
	}
	if s.Present() {
		t.Error("Present() repainted with no writes")
	}

	if err := s.SetAttribute(h, AttrX, 4.0); err != nil {
		t.Fatal(err)
	}
	if !s.Present() {
		t.Error("Present() skipped after a write")
	}

	s.Invalidate()
	if !s.Present() {
		t.Error("Present() skipped after Invalidate")
	}
}

func TestTerminalSurfaceSetBackground(t *testing.T) {
	s, screen := newSimSurface(t, 4, 2)
	s.Present()
	if s.Present() {
		t.Fatal("Present() repainted with no writes")
	}

	bg := core.RGB{R: 0x12, G: 0x34, B: 0x56}
	s.SetBackground(bg)
	if !s.Present() {
		t.Fatal("Present() skipped after SetBackground")
	}

	cells, _, _ := screen.GetContents()
	_, got, _ := cells[0].Style.Decompose()
	if got != RGBToTcell(bg) {
		t.Errorf("background = %v, want %v", got, RGBToTcell(bg))
	}
}

func TestTerminalSurfaceStackOrder(t *testing.T) {
	s, screen := newSimSurface(t, 4, 1)

	top, _ := s.CreateHandle(Attrs{AttrGlyph: "T", AttrOpacity: 1.0})
	bottom, _ := s.CreateHandle(Attrs{AttrGlyph: "B", AttrOpacity: 1.0})
	s.SetStackOrder(top, 2)
	s.SetStackOrder(bottom, 1)
	s.Present()

	if got := runeAt(screen, 0, 0); got != 'T' {
		t.Errorf("top cell = %q, want T", got)
	}

	s.SetStackOrder(bottom, 3)
	s.Present()
	if got := runeAt(screen, 0, 0); got != 'B' {
		t.Errorf("after restack = %q, want B", got)
	}
}

func TestTerminalSurfaceSkipsInvisible(t *testing.T) {
	s, screen := newSimSurface(t, 4, 1)
	s.CreateHandle(Attrs{AttrGlyph: "X", AttrOpacity: 0.0})
	s.Present()

	if got := runeAt(screen, 0, 0); got != ' ' {
		t.Errorf("zero opacity drawn as %q", got)
	}
}

func TestTerminalSurfaceFrame(t *testing.T) {
	s, screen := newSimSurface(t, 4, 4)

	bm := NewBitmap(2, 2)
	bm.Set(0, 0, Cell{Rune: 'a', Fg: core.RGBWhite})
	bm.Set(1, 1, Cell{Rune: 'b', Fg: core.RGBWhite})

	s.CreateHandle(Attrs{AttrX: 1.0, AttrY: 1.0, AttrFrame: bm, AttrOpacity: 1.0})
	s.Present()

	if got := runeAt(screen, 1, 1); got != 'a' {
		t.Errorf("(1,1) = %q, want a", got)
	}
	if got := runeAt(screen, 2, 2); got != 'b' {
		t.Errorf("(2,2) = %q, want b", got)
	}
	if got := runeAt(screen, 2, 1); got != ' ' {
		t.Errorf("transparent cell drawn as %q", got)
	}
}

func TestTerminalSurfaceErrors(t *testing.T) {
	s, _ := newSimSurface(t, 4, 4)

	if err := s.SetAttribute(99, AttrX, 1.0); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("unknown handle err = %v", err)
	}
	h, _ := s.CreateHandle(nil)
	if err := s.SetAttribute(h, AttrX, "left"); err == nil {
		t.Error("expected type error")
	}
	if err := s.DestroyHandle(h); err != nil {
		t.Fatal(err)
	}
	if err := s.DestroyHandle(h); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("double destroy err = %v", err)
	}
	if _, err := s.CreateHandle(Attrs{AttrColor: "red"}); err == nil {
		t.Error("expected error for bad initial color")
	}
}

func TestFillRune(t *testing.T) {
	tests := []struct {
		rot  float64
		want rune
	}{
		{0, '█'},
		{math.Pi / 4, '▓'},
		{math.Pi / 2, '█'},
		{-math.Pi / 4, '▓'},
		{0.1, '█'},
	}
	for _, tt := range tests {
		if got := fillRune(tt.rot); got != tt.want {
			t.Errorf("fillRune(%v) = %q, want %q", tt.rot, got, tt.want)
		}
	}
}

func TestCellMetrics(t *testing.T) {
	m := CellMetrics{Width: 8, Height: 16}

	if c, r := m.ToCell(17, 33); c != 2 || r != 2 {
		t.Errorf("ToCell = (%d,%d), want (2,2)", c, r)
	}
	if x, y := m.ToSurface(2, 2); x != 20 || y != 40 {
		t.Errorf("ToSurface = (%v,%v), want (20,40)", x, y)
	}
	if a, b := m.Span(4, 2, 8); a != 0 || b != 0 {
		t.Errorf("small span = [%d,%d], want [0,0]", a, b)
	}
	if a, b := m.Span(4, 8, 8); a != 0 || b != 1 {
		t.Errorf("straddling span = [%d,%d], want [0,1]", a, b)
	}
}
