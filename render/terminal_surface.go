package render

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sgf/core"
	"github.com/mattn/go-runewidth"
)

// node is the terminal-side state of a handle
type node struct {
	id       Handle
	stack    int
	x, y     float64
	w, h     float64
	rotation float64
	opacity  float64
	color    core.RGB
	frame    *Bitmap
	glyph    string
}

// TerminalSurface is a Surface composited onto a tcell screen
// Attribute writes only mark the surface dirty; Present repaints the whole screen once
// per frame when something changed, so idle frames cost nothing
type TerminalSurface struct {
	mu      sync.Mutex
	screen  tcell.Screen
	metrics CellMetrics
	bg      core.RGB

	nodes map[Handle]*node
	next  Handle
	dirty bool

	order      []*node
	orderDirty bool
}

// NewTerminalSurface wraps an initialized screen
func NewTerminalSurface(screen tcell.Screen, metrics CellMetrics, background core.RGB) *TerminalSurface {
	return &TerminalSurface{
		screen:  screen,
		metrics: metrics,
		bg:      background,
		nodes:   make(map[Handle]*node),
		dirty:   true,
	}
}

// Metrics returns the cell mapping used for drawing
func (s *TerminalSurface) Metrics() CellMetrics {
	return s.metrics
}

// SetBackground changes the fill color and schedules a repaint
func (s *TerminalSurface) SetBackground(c core.RGB) {
	s.mu.Lock()
	s.bg = c
	s.dirty = true
	s.mu.Unlock()
}

// Invalidate forces a repaint on the next Present, used after resize
func (s *TerminalSurface) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// CreateHandle implements Surface
func (s *TerminalSurface) CreateHandle(initial Attrs) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	n := &node{id: s.next, opacity: 1}
	for name, v := range initial {
		if err := n.set(name, v); err != nil {
			return 0, err
		}
	}
	s.nodes[n.id] = n
	s.dirty = true
	s.orderDirty = true
	return n.id, nil
}

// SetAttribute implements Surface
func (s *TerminalSurface) SetAttribute(h Handle, name Attr, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[h]
	if !ok {
		return fmt.Errorf("set %s on %d: %w", name, h, ErrUnknownHandle)
	}
	if err := n.set(name, value); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// SetStackOrder implements Surface
func (s *TerminalSurface) SetStackOrder(h Handle, key int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[h]
	if !ok {
		return fmt.Errorf("stack %d: %w", h, ErrUnknownHandle)
	}
	n.stack = key
	s.dirty = true
	s.orderDirty = true
	return nil
}

// DestroyHandle implements Surface
func (s *TerminalSurface) DestroyHandle(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[h]; !ok {
		return fmt.Errorf("destroy %d: %w", h, ErrUnknownHandle)
	}
	delete(s.nodes, h)
	s.dirty = true
	s.orderDirty = true
	return nil
}

// Present implements Presenter
func (s *TerminalSurface) Present() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return false
	}

	base := tcell.StyleDefault.Background(RGBToTcell(s.bg))
	s.screen.Fill(' ', base)

	for _, n := range s.sorted() {
		if n.opacity <= 0 {
			continue
		}
		switch {
		case n.frame != nil:
			s.drawFrame(n, base)
		case n.glyph != "":
			s.drawGlyph(n, base)
		default:
			s.drawRect(n, base)
		}
	}

	s.screen.Show()
	s.dirty = false
	return true
}

// sorted returns nodes bottom to top, handle id breaks ties (creation order)
func (s *TerminalSurface) sorted() []*node {
	if !s.orderDirty {
		return s.order
	}
	s.order = s.order[:0]
	for _, n := range s.nodes {
		s.order = append(s.order, n)
	}
	slices.SortFunc(s.order, func(a, b *node) int {
		if a.stack != b.stack {
			return a.stack - b.stack
		}
		if a.id < b.id {
			return -1
		}
		if a.id > b.id {
			return 1
		}
		return 0
	})
	s.orderDirty = false
	return s.order
}

func (s *TerminalSurface) inBounds(col, row int) bool {
	w, h := s.screen.Size()
	return col >= 0 && row >= 0 && col < w && row < h
}

func (s *TerminalSurface) drawRect(n *node, base tcell.Style) {
	c0, c1 := s.metrics.Span(n.x, n.w, s.metrics.Width)
	r0, r1 := s.metrics.Span(n.y, n.h, s.metrics.Height)
	style := base.Foreground(RGBToTcell(s.bg.Blend(n.color, n.opacity)))
	ch := fillRune(n.rotation)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if s.inBounds(col, row) {
				s.screen.SetContent(col, row, ch, nil, style)
			}
		}
	}
}

func (s *TerminalSurface) drawGlyph(n *node, base tcell.Style) {
	col, row := s.metrics.ToCell(n.x, n.y)
	style := base.Foreground(RGBToTcell(s.bg.Blend(n.color, n.opacity)))

	for _, r := range n.glyph {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if s.inBounds(col, row) {
			s.screen.SetContent(col, row, r, nil, style)
		}
		col += w
	}
}

func (s *TerminalSurface) drawFrame(n *node, base tcell.Style) {
	col0, row0 := s.metrics.ToCell(n.x, n.y)
	f := n.frame

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			if c.Transparent || !s.inBounds(col0+x, row0+y) {
				continue
			}
			style := base.Foreground(RGBToTcell(s.bg.Blend(c.Fg, n.opacity)))
			if !c.NoBg {
				style = style.Background(RGBToTcell(s.bg.Blend(c.Bg, n.opacity)))
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.screen.SetContent(col0+x, row0+y, r, nil, style)
		}
	}
}

// fillRune approximates rotation, squares are symmetric every quarter turn
func fillRune(rotation float64) rune {
	q := math.Mod(rotation, math.Pi/2)
	if q < 0 {
		q += math.Pi / 2
	}
	frac := q / (math.Pi / 2)
	if frac < 0.25 || frac >= 0.75 {
		return '█'
	}
	return '▓'
}

func (n *node) set(name Attr, value any) error {
	switch name {
	case AttrX, AttrY, AttrWidth, AttrHeight, AttrRotation, AttrOpacity:
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("attr %s: want float64, got %T", name, value)
		}
		switch name {
		case AttrX:
			n.x = f
		case AttrY:
			n.y = f
		case AttrWidth:
			n.w = f
		case AttrHeight:
			n.h = f
		case AttrRotation:
			n.rotation = f
		case AttrOpacity:
			n.opacity = f
		}
	case AttrColor:
		c, ok := value.(core.RGB)
		if !ok {
			return fmt.Errorf("attr %s: want core.RGB, got %T", name, value)
		}
		n.color = c
	case AttrFrame:
		f, ok := value.(*Bitmap)
		if !ok {
			return fmt.Errorf("attr %s: want *Bitmap, got %T", name, value)
		}
		n.frame = f
	case AttrGlyph:
		g, ok := value.(string)
		if !ok {
			return fmt.Errorf("attr %s: want string, got %T", name, value)
		}
		n.glyph = g
	default:
		// Unknown attributes are accepted and ignored, writes stay idempotent
	}
	return nil
}
