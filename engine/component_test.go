package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/render"
)

func TestRenderCreatesOnce(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 1)
	p.X, p.Y = 10, 20
	p.Color = core.RGB{R: 255}

	if err := p.Component.Render(rec); err != nil {
		t.Fatalf("first render: %v", err)
	}
	if rec.Count(render.OpCreate) != 1 || rec.Count(render.OpStack) != 1 || rec.Count(render.OpSet) != 0 {
		t.Fatalf("first render ops = %v", rec.Ops())
	}
	n, ok := rec.Node(p.Handle())
	if !ok {
		t.Fatal("handle not live")
	}
	if n.Attrs[render.AttrX] != 10.0 || n.Attrs[render.AttrColor] != (core.RGB{R: 255}) || n.Stack != 1 {
		t.Errorf("initial node = %+v", n)
	}
}

func TestRenderIdempotent(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 0)
	_ = p.Component.Render(rec)
	rec.Reset()

	// No changes, no writes
	if err := p.Component.Render(rec); err != nil {
		t.Fatal(err)
	}
	if w := rec.Writes(); w != 0 {
		t.Errorf("unchanged render wrote %d times", w)
	}

	// One change, exactly one write
	p.X = 5
	_ = p.Component.Render(rec)
	_ = p.Component.Render(rec)
	ops := rec.Ops()
	if len(ops) != 1 || ops[0].Kind != render.OpSet || ops[0].Attr != render.AttrX || ops[0].Value != 5.0 {
		t.Errorf("ops = %+v, want single x write", ops)
	}
	if p.Shadow().X != 5 {
		t.Errorf("shadow x = %v, want 5", p.Shadow().X)
	}
}

func TestRenderStackOrderOnlyOnChange(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 0)
	_ = p.Component.Render(rec)
	rec.Reset()

	p.ZIndex = 4
	_ = p.Component.Render(rec)
	_ = p.Component.Render(rec)

	if got := rec.Count(render.OpStack); got != 1 {
		t.Errorf("stack writes = %d, want 1", got)
	}
	if n, _ := rec.Node(p.Handle()); n.Stack != 4 {
		t.Errorf("stack = %d, want 4", n.Stack)
	}
}

func TestRenderOpacityClamped(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 0)
	p.Opacity = 1.7
	_ = p.Component.Render(rec)

	n, _ := rec.Node(p.Handle())
	if n.Attrs[render.AttrOpacity] != 1.0 {
		t.Errorf("written opacity = %v, want 1", n.Attrs[render.AttrOpacity])
	}

	p.Opacity = -0.02
	_ = p.Component.Render(rec)
	n, _ = rec.Node(p.Handle())
	if n.Attrs[render.AttrOpacity] != 0.0 {
		t.Errorf("written opacity = %v, want 0", n.Attrs[render.AttrOpacity])
	}
	if p.Opacity != -0.02 {
		t.Errorf("state opacity = %v, must stay unclamped", p.Opacity)
	}

	// Below zero again maps to the same written value, no write
	rec.Reset()
	p.Opacity = -0.03
	_ = p.Component.Render(rec)
	if rec.Writes() != 0 {
		t.Errorf("clamped-equal opacity wrote %d times", rec.Writes())
	}
}

func TestRenderFailureRetried(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 0)
	_ = p.Component.Render(rec)

	rec.FailAttr(p.Handle(), render.AttrX)
	p.X, p.Y = 3, 4
	if err := p.Component.Render(rec); err == nil {
		t.Fatal("render succeeded with failing surface")
	}
	sh := p.Shadow()
	if sh.X != 0 || sh.Y != 0 {
		t.Errorf("shadow advanced past failure: %+v", sh)
	}

	rec.ClearFailures()
	rec.Reset()
	if err := p.Component.Render(rec); err != nil {
		t.Fatal(err)
	}
	if got := rec.Count(render.OpSet); got != 2 {
		t.Errorf("retry wrote %d attributes, want 2", got)
	}
}

func TestSyncAttr(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 0)
	var last any

	if err := p.SyncAttr(rec, render.AttrGlyph, "@", &last); !errors.Is(err, ErrNotRendered) {
		t.Errorf("before render = %v, want ErrNotRendered", err)
	}

	_ = p.Component.Render(rec)
	rec.Reset()
	_ = p.SyncAttr(rec, render.AttrGlyph, "@", &last)
	_ = p.SyncAttr(rec, render.AttrGlyph, "@", &last)
	if got := rec.Count(render.OpSet); got != 1 {
		t.Errorf("glyph writes = %d, want 1", got)
	}
}

func TestDestroyOnce(t *testing.T) {
	rec := render.NewRecorder()
	p := newTracker("p", 0)
	_ = p.Component.Render(rec)

	if err := p.Destroy(rec); err != nil {
		t.Fatal(err)
	}
	if err := p.Destroy(rec); err != nil {
		t.Errorf("second destroy: %v", err)
	}
	if got := rec.Count(render.OpDestroy); got != 1 {
		t.Errorf("destroy calls = %d, want 1", got)
	}
	if err := p.Component.Render(rec); !errors.Is(err, ErrDestroyed) {
		t.Errorf("render after destroy = %v, want ErrDestroyed", err)
	}
}
