package parameter

import "math"

// Square particle, the default spawn kind
const (
	// ParticleLifetime is the age in ticks after which a particle removes itself
	// Removal happens on the first update where age exceeds this value
	ParticleLifetime = 50

	// ParticleOpacity is the opacity every particle starts with
	ParticleOpacity = 0.5

	// ParticleOpacityDecay is subtracted from opacity once per update
	ParticleOpacityDecay = 0.01

	// ParticleSizeMin and ParticleSizeMax bound the square edge, max exclusive
	ParticleSizeMin = 2.0
	ParticleSizeMax = 20.0

	// ParticleSpeedMax bounds each velocity component to [-max, max)
	ParticleSpeedMax = 10.0

	// ParticleRotationMax is 40 degrees per tick in radians, exclusive
	ParticleRotationMax = 40 * math.Pi / 180
)

// Spark particle, short lived and small
const (
	SparkLifetime     = 20
	SparkOpacity      = 0.9
	SparkOpacityDecay = 0.025
	SparkSizeMin      = 1.0
	SparkSizeMax      = 2.0
	SparkSpeedMax     = 4.0
)
