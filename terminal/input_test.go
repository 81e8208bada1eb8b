package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sgf/event"
	"github.com/lixenwraith/sgf/render"
)

// directRunner runs dispatch inline and counts calls
type directRunner struct {
	calls int
}

func (r *directRunner) RunSafe(fn func()) {
	r.calls++
	fn()
}

type invalidateCounter struct {
	n int
}

func (c *invalidateCounter) Invalidate() { c.n++ }

func newTestInput(t *testing.T) (*Input, *event.Bus, *directRunner, *invalidateCounter, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 10)

	bus := event.NewBus()
	runner := &directRunner{}
	inv := &invalidateCounter{}
	in := NewInput(screen, bus, runner, render.CellMetrics{Width: 8, Height: 16}, inv)
	return in, bus, runner, inv, screen
}

func TestTranslateMouse(t *testing.T) {
	in, _, _, _, _ := newTestInput(t)

	tests := []struct {
		name    string
		buttons tcell.ButtonMask
		want    event.Name
	}{
		{"hover", tcell.ButtonNone, event.PointerMove},
		{"press", tcell.Button1, event.PointerDown},
		{"drag", tcell.Button1, event.PointerMove},
		{"release", tcell.ButtonNone, event.PointerUp},
		{"wheel", tcell.WheelUp, event.PointerMove},
		{"right press", tcell.Button2, event.PointerDown},
	}
	for _, tt := range tests {
		out, quit := in.Translate(tcell.NewEventMouse(2, 3, tt.buttons, tcell.ModNone))
		if quit || len(out) != 1 {
			t.Fatalf("%s: out=%v quit=%v", tt.name, out, quit)
		}
		if out[0].Name != tt.want {
			t.Errorf("%s: name = %s, want %s", tt.name, out[0].Name, tt.want)
		}
		// Cell center in surface units
		if out[0].X != 20 || out[0].Y != 56 {
			t.Errorf("%s: position = %v,%v, want 20,56", tt.name, out[0].X, out[0].Y)
		}
	}
}

func TestTranslateKey(t *testing.T) {
	in, _, _, _, _ := newTestInput(t)
	in.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	out, quit := in.Translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if quit || len(out) != 2 {
		t.Fatalf("out=%v quit=%v", out, quit)
	}
	if out[0].Name != event.KeyDown || out[1].Name != event.KeyUp {
		t.Errorf("names = %s,%s, want keydown,keyup", out[0].Name, out[1].Name)
	}
	if out[0].Key != "x" || out[0].X != 12 || out[0].Y != 24 {
		t.Errorf("key event = %+v", out[0])
	}

	out, _ = in.Translate(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if len(out) != 2 || out[0].Key == "" {
		t.Errorf("named key = %+v", out)
	}

	for _, k := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		if _, quit := in.Translate(tcell.NewEventKey(k, 0, tcell.ModNone)); !quit {
			t.Errorf("key %v did not quit", k)
		}
	}
}

func TestHandleDispatches(t *testing.T) {
	in, bus, runner, _, _ := newTestInput(t)
	var got []event.Name
	for _, name := range event.Names {
		bus.On(name, func(ev event.Input) { got = append(got, ev.Name) })
	}

	if !in.Handle(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)) {
		t.Fatal("mouse event requested quit")
	}
	if !in.Handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)) {
		t.Fatal("key event requested quit")
	}

	want := []event.Name{event.PointerDown, event.KeyDown, event.KeyUp}
	if len(got) != len(want) {
		t.Fatalf("dispatched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	if runner.calls != 2 {
		t.Errorf("runner calls = %d, want one per tcell event", runner.calls)
	}
	if p := bus.Pointer(); p.X != 4 || p.Y != 8 {
		t.Errorf("pointer = %+v, want 4,8", p)
	}
}

func TestHandleResizeInvalidates(t *testing.T) {
	in, _, _, inv, _ := newTestInput(t)
	if !in.Handle(tcell.NewEventResize(40, 12)) {
		t.Fatal("resize requested quit")
	}
	if inv.n != 1 {
		t.Errorf("invalidations = %d, want 1", inv.n)
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	in, bus, _, _, screen := newTestInput(t)
	keys := 0
	bus.On(event.KeyDown, func(event.Input) { keys++ })

	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	done := make(chan error, 1)
	go func() { done <- in.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return on escape")
	}
	if keys != 1 {
		t.Errorf("keydowns = %d, want 1", keys)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	in, _, _, _, _ := newTestInput(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- in.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on cancel")
	}
}

func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	out := buf.String()
	for _, seq := range []string{"\x1b[?25h", "\x1b[?1049l", "\x1b[?1000l"} {
		if !strings.Contains(out, seq) {
			t.Errorf("reset output missing %q", seq)
		}
	}
}
