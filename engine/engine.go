package engine

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/render"
)

// Stats is a snapshot of loop counters
type Stats struct {
	Ticks         uint64
	Entities      int
	RenderErrors  uint64
	UpdatePanics  uint64
	DestroyErrors uint64
}

// Engine owns the registry, the tick counter and the surface, and drives the
// update/render loop
type Engine struct {
	mu       sync.Mutex // held for a whole tick and by RunSafe
	surface  render.Surface
	registry *Registry
	config   *Config

	tick     atomic.Uint64
	inPass   atomic.Bool
	state    atomic.Int32
	running  atomic.Bool
	stopping atomic.Bool

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup

	renderErrors  atomic.Uint64
	updatePanics  atomic.Uint64
	destroyErrors atomic.Uint64
}

// New creates an idle engine drawing onto surface, nil cfg uses DefaultConfig
func New(surface render.Surface, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()

	e := &Engine{
		surface:  surface,
		config:   cfg,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	e.registry = NewRegistry(e)
	e.state.Store(int32(StateIdle))
	return e
}

// Registry returns the component registry
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Surface returns the display surface
func (e *Engine) Surface() render.Surface {
	return e.surface
}

// Config returns the loop configuration
func (e *Engine) Config() Config {
	return *e.config
}

// State returns the current loop phase
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Tick returns the tick being run during a pass, or the next tick to run between passes
func (e *Engine) Tick() uint64 {
	return e.tick.Load()
}

// BirthTick returns the first tick an entity added now will be updated in
// Additions made during a pass are committed at the start of the following tick
func (e *Engine) BirthTick() uint64 {
	t := e.tick.Load()
	if e.inPass.Load() {
		return t + 1
	}
	return t
}

// AddEntity queues ent for registration, diagnostics are logged and returned
func (e *Engine) AddEntity(ent Entity) error {
	if e.stopping.Load() {
		log.Printf("engine: add after stop ignored")
		return ErrStopped
	}
	if err := e.registry.Add(ent); err != nil {
		log.Printf("engine: add entity: %v", err)
		return err
	}
	return nil
}

// RemoveEntity queues ent for removal at the next commit
func (e *Engine) RemoveEntity(ent Entity) {
	e.registry.Remove(ent)
}

// RunSafe runs fn under the engine lock, serialized against ticks
// A Stop requested by fn completes when fn returns
func (e *Engine) RunSafe(fn func()) {
	e.mu.Lock()
	defer e.unlock()
	fn()
}

// unlock releases the tick lock, tearing down first if a stop was requested while it was held
func (e *Engine) unlock() {
	if e.stopping.Load() {
		e.teardown()
	}
	e.mu.Unlock()
}

// Start launches the tick loop
func (e *Engine) Start() error {
	if e.stopping.Load() {
		return ErrStopped
	}
	if !e.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	e.state.CompareAndSwap(int32(StateIdle), int32(StateRunning))
	e.wg.Add(1)
	core.Go(e.loop)
	return nil
}

// Stop halts the loop after the in-flight tick and releases every surface handle
// Stopping is terminal. When the tick lock is held, by a running tick or by the
// caller itself from inside an Update or a RunSafe callback, Stop returns at once
// and teardown runs as the lock is released; Done reports completion
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.stopping.Store(true)
		close(e.stopChan)
	})

	if !e.mu.TryLock() {
		core.Go(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.teardown()
		})
		return
	}
	e.teardown()
	e.mu.Unlock()
	e.wg.Wait()
}

// Done is closed once Stop has released every handle
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// teardown runs once under the tick lock
func (e *Engine) teardown() {
	if e.State() == StateStopped {
		return
	}
	e.running.Store(false)
	e.state.Store(int32(StateStopped))
	for _, ent := range e.registry.Clear() {
		e.destroy(ent)
	}
	e.present()
	close(e.done)
}

func (e *Engine) loop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			e.Step()
		}
	}
}

// Step runs one tick synchronously: commit, update, render, present
// Adds and removes queued during the tick apply together at the next commit
// No-op once stopped
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.unlock()

	if e.stopping.Load() {
		return
	}
	prev := e.State()

	for _, ent := range e.registry.Commit() {
		e.destroy(ent)
	}

	n := e.tick.Load()
	e.inPass.Store(true)

	e.state.Store(int32(StateUpdating))
	e.updatePass(n)

	e.state.Store(int32(StateRendering))
	e.renderPass()
	e.present()

	e.inPass.Store(false)
	e.tick.Add(1)

	if prev == StateIdle {
		e.state.Store(int32(StateIdle))
	} else {
		e.state.Store(int32(StateRunning))
	}
}

func (e *Engine) updatePass(tick uint64) {
	e.registry.ForEachInDrawOrder(func(ent Entity) {
		e.safeUpdate(ent, tick)
	})
}

func (e *Engine) safeUpdate(ent Entity, tick uint64) {
	defer func() {
		if r := recover(); r != nil {
			e.updatePanics.Add(1)
			log.Printf("engine: update panic at tick %d: %v\n%s", tick, r, debug.Stack())
		}
	}()
	ent.Update(tick)
}

func (e *Engine) renderPass() {
	e.registry.ForEachInDrawOrder(func(ent Entity) {
		if err := e.safeRender(ent); err != nil {
			e.renderErrors.Add(1)
			log.Printf("engine: render skipped: %v", err)
		}
	})
}

func (e *Engine) safeRender(ent Entity) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()
	return ent.Render(e.surface)
}

func (e *Engine) destroy(ent Entity) {
	if err := ent.Destroy(e.surface); err != nil {
		e.destroyErrors.Add(1)
		log.Printf("engine: destroy: %v", err)
	}
}

func (e *Engine) present() {
	if p, ok := e.surface.(render.Presenter); ok {
		p.Present()
	}
}

// Stats returns loop counters
func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:         e.tick.Load(),
		Entities:      e.registry.Len(),
		RenderErrors:  e.renderErrors.Load(),
		UpdatePanics:  e.updatePanics.Load(),
		DestroyErrors: e.destroyErrors.Load(),
	}
}
