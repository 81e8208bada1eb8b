package component

import (
	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/engine"
	"github.com/lixenwraith/sgf/parameter"
)

// Particle is a short-lived rectangle that drifts, spins and fades
// It removes itself once its age exceeds Lifetime
type Particle struct {
	engine.Component

	DX, DY        float64 // surface units per tick
	RotationSpeed float64 // radians per tick
	OpacityDecay  float64 // opacity lost per tick, not clamped in state
	SpawnTick     uint64
	Lifetime      uint64 // ticks
}

// NewParticle creates a square particle with default opacity, decay and lifetime
func NewParticle(x, y, size float64, color core.RGB, spawnTick uint64) *Particle {
	p := &Particle{
		Component:    engine.NewComponent(x, y, size, size),
		OpacityDecay: parameter.ParticleOpacityDecay,
		SpawnTick:    spawnTick,
		Lifetime:     parameter.ParticleLifetime,
	}
	p.Opacity = parameter.ParticleOpacity
	p.Color = color
	p.ZIndex = parameter.ZIndexParticle
	return p
}

// Age returns ticks elapsed since spawn
func (p *Particle) Age(tick uint64) uint64 {
	if tick < p.SpawnTick {
		return 0
	}
	return tick - p.SpawnTick
}

// Expired reports whether the particle is past its lifetime at tick
func (p *Particle) Expired(tick uint64) bool {
	return p.Age(tick) > p.Lifetime
}

// Update requests removal once expired, otherwise moves, fades and spins
func (p *Particle) Update(tick uint64) {
	if p.Expired(tick) {
		p.Remove()
		return
	}
	p.X += p.DX
	p.Y += p.DY
	p.Opacity -= p.OpacityDecay
	p.Rotation += p.RotationSpeed
}
