package terminal

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sgf/event"
	"github.com/lixenwraith/sgf/render"
)

// Runner serializes dispatch against the tick loop, satisfied by *engine.Engine
type Runner interface {
	RunSafe(fn func())
}

// Invalidator is repainted in full after a resize, satisfied by *render.TerminalSurface
type Invalidator interface {
	Invalidate()
}

const pressedButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// Input reads tcell events and dispatches them on the bus
type Input struct {
	screen  tcell.Screen
	bus     *event.Bus
	runner  Runner
	metrics render.CellMetrics
	surface Invalidator

	buttons tcell.ButtonMask
	pointer event.Point
}

// NewInput creates an input source, surface may be nil
func NewInput(screen tcell.Screen, bus *event.Bus, runner Runner, metrics render.CellMetrics, surface Invalidator) *Input {
	return &Input{
		screen:  screen,
		bus:     bus,
		runner:  runner,
		metrics: metrics,
		surface: surface,
	}
}

// Translate maps a tcell event onto the event vocabulary
// quit is set for Escape and Ctrl+C
func (in *Input) Translate(ev tcell.Event) (out []event.Input, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return nil, true
		}
		key := keyName(ev)
		return []event.Input{
			{Name: event.KeyDown, X: in.pointer.X, Y: in.pointer.Y, Key: key},
			{Name: event.KeyUp, X: in.pointer.X, Y: in.pointer.Y, Key: key},
		}, false

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := in.metrics.ToSurface(col, row)
		in.pointer = event.Point{X: x, Y: y}

		pressed := ev.Buttons() & pressedButtons
		name := event.PointerMove
		switch {
		case pressed != 0 && in.buttons == 0:
			name = event.PointerDown
		case pressed == 0 && in.buttons != 0:
			name = event.PointerUp
		}
		in.buttons = pressed
		return []event.Input{{Name: name, X: x, Y: y}}, false
	}
	return nil, false
}

// Handle translates and dispatches ev, returns false when input asks to quit
func (in *Input) Handle(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		in.screen.Sync()
		if in.surface != nil {
			in.runner.RunSafe(in.surface.Invalidate)
		}
		return true
	}

	out, quit := in.Translate(ev)
	if quit {
		return false
	}
	if len(out) == 0 {
		return true
	}

	in.runner.RunSafe(func() {
		for _, e := range out {
			if failed := in.bus.Dispatch(e); failed > 0 {
				log.Printf("terminal: %d listeners failed on %s", failed, e.Name)
			}
		}
	})
	return true
}

// Run polls the screen until a quit key, ctx cancellation or screen shutdown
func (in *Input) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			in.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := in.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !in.Handle(ev) {
			return nil
		}
	}
}

// keyName returns the rune for printable keys, tcell's name otherwise
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return ev.Name()
}
