package system

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/sgf/component"
	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/engine"
	"github.com/lixenwraith/sgf/event"
	"github.com/lixenwraith/sgf/parameter"
	"github.com/lixenwraith/sgf/vmath"
)

// Kind selects a particle parameter set
type Kind int

const (
	KindSquare Kind = iota
	KindSpark
)

func (k Kind) String() string {
	switch k {
	case KindSquare:
		return "square"
	case KindSpark:
		return "spark"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// kindParams holds randomization bounds, max values exclusive
type kindParams struct {
	sizeMin, sizeMax float64
	speedMax         float64
	rotationMax      float64
	opacity          float64
	decay            float64
	lifetime         uint64
}

var kindTable = [...]kindParams{
	KindSquare: {
		sizeMin:     parameter.ParticleSizeMin,
		sizeMax:     parameter.ParticleSizeMax,
		speedMax:    parameter.ParticleSpeedMax,
		rotationMax: parameter.ParticleRotationMax,
		opacity:     parameter.ParticleOpacity,
		decay:       parameter.ParticleOpacityDecay,
		lifetime:    parameter.ParticleLifetime,
	},
	KindSpark: {
		sizeMin:     parameter.SparkSizeMin,
		sizeMax:     parameter.SparkSizeMax,
		speedMax:    parameter.SparkSpeedMax,
		rotationMax: parameter.ParticleRotationMax,
		opacity:     parameter.SparkOpacity,
		decay:       parameter.SparkOpacityDecay,
		lifetime:    parameter.SparkLifetime,
	},
}

// Host is the loop driver particles are registered with
type Host interface {
	AddEntity(e engine.Entity) error
	BirthTick() uint64
}

// PositionSource reports where pointer and key driven spawns appear
type PositionSource interface {
	Position() event.Point
}

// Spawner creates randomized particles and registers them
// Safe for use from listeners and from entity updates
type Spawner struct {
	host Host

	mu    sync.Mutex
	rng   *vmath.FastRand
	kinds [len(kindTable)]kindParams

	// OnSpawn runs after a particle is registered
	OnSpawn func(p *component.Particle, kind Kind)

	spawned atomic.Uint64
}

// NewSpawner creates a spawner registering into host, nil cfg uses DefaultSpawnConfig
func NewSpawner(host Host, cfg *SpawnConfig) *Spawner {
	if cfg == nil {
		cfg = DefaultSpawnConfig()
	}
	s := &Spawner{
		host:  host,
		rng:   vmath.NewFastRand(cfg.seed()),
		kinds: kindTable,
	}
	s.kinds[KindSquare].lifetime = cfg.Lifetime
	s.kinds[KindSquare].decay = cfg.OpacityDecay
	return s
}

// Spawn creates a particle of kind with randomized size, velocity, spin and color
// Overrides are applied after randomization and take precedence
func (s *Spawner) Spawn(kind Kind, overrides ...Option) (*component.Particle, error) {
	if kind < 0 || int(kind) >= len(s.kinds) {
		return nil, fmt.Errorf("spawn: unknown kind %s", kind)
	}
	kp := s.kinds[kind]

	s.mu.Lock()
	size := s.rng.Range(kp.sizeMin, kp.sizeMax)
	color := core.RGB{
		R: uint8(s.rng.Intn(256)),
		G: uint8(s.rng.Intn(256)),
		B: uint8(s.rng.Intn(256)),
	}
	dy := s.rng.Range(-kp.speedMax, kp.speedMax)
	dx := s.rng.Range(-kp.speedMax, kp.speedMax)
	spin := s.rng.Range(0, kp.rotationMax)
	s.mu.Unlock()

	p := component.NewParticle(0, 0, size, color, s.host.BirthTick())
	p.DX, p.DY = dx, dy
	p.RotationSpeed = spin
	p.Opacity = kp.opacity
	p.OpacityDecay = kp.decay
	p.Lifetime = kp.lifetime

	for _, opt := range overrides {
		opt(p)
	}

	if err := s.host.AddEntity(p); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", kind, err)
	}
	s.spawned.Add(1)

	if s.OnSpawn != nil {
		s.OnSpawn(p, kind)
	}
	return p, nil
}

// Spawned returns the number of registered particles
func (s *Spawner) Spawned() uint64 {
	return s.spawned.Load()
}

// Bind spawns a square at the cursor on pointer and key events, and at the
// primary touch point on touch events
func (s *Spawner) Bind(bus *event.Bus, cursor PositionSource) {
	atCursor := func(ev event.Input) error {
		pos := cursor.Position()
		_, err := s.Spawn(KindSquare, WithPosition(pos.X, pos.Y))
		return err
	}
	atTouch := func(ev event.Input) error {
		if len(ev.Touches) == 0 {
			log.Printf("system: %s without touch points ignored", ev.Name)
			return nil
		}
		_, err := s.Spawn(KindSquare, WithPosition(ev.X, ev.Y))
		return err
	}

	bus.AddListener(event.PointerDown, atCursor).
		AddListener(event.PointerUp, atCursor).
		AddListener(event.PointerMove, atCursor).
		AddListener(event.TouchStart, atTouch).
		AddListener(event.TouchMove, atTouch).
		AddListener(event.KeyDown, atCursor).
		AddListener(event.KeyUp, atCursor)
}
