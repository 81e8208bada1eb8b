package system

import (
	"github.com/lixenwraith/sgf/component"
	"github.com/lixenwraith/sgf/core"
)

// Option overrides a randomized particle attribute
type Option func(p *component.Particle)

func WithPosition(x, y float64) Option {
	return func(p *component.Particle) {
		p.X, p.Y = x, y
	}
}

func WithVelocity(dx, dy float64) Option {
	return func(p *component.Particle) {
		p.DX, p.DY = dx, dy
	}
}

func WithSize(size float64) Option {
	return func(p *component.Particle) {
		p.Width, p.Height = size, size
	}
}

func WithColor(c core.RGB) Option {
	return func(p *component.Particle) {
		p.Color = c
	}
}

// WithRotationSpeed sets spin in radians per tick
func WithRotationSpeed(rad float64) Option {
	return func(p *component.Particle) {
		p.RotationSpeed = rad
	}
}

func WithOpacity(opacity float64) Option {
	return func(p *component.Particle) {
		p.Opacity = opacity
	}
}

func WithDecay(decay float64) Option {
	return func(p *component.Particle) {
		p.OpacityDecay = decay
	}
}

// WithLifetime sets the age in ticks after which the particle removes itself
func WithLifetime(ticks uint64) Option {
	return func(p *component.Particle) {
		p.Lifetime = ticks
	}
}

func WithZIndex(z int) Option {
	return func(p *component.Particle) {
		p.ZIndex = z
	}
}
