package physics

import "github.com/chewxy/math32"

const DefaultIterations = 6

// Config holds the world-wide simulation parameters.
type Config struct {
	// Gravity is in world units per second squared; +Y points down.
	Gravity    Vector2
	Iterations int

	SleepLinearTolerance  float32
	SleepAngularTolerance float32
	SleepTime             float32

	// CorrectionPercent and CorrectionSlop tune the linear projection that
	// pushes overlapping bodies apart after the velocity passes.
	CorrectionPercent float32
	CorrectionSlop    float32
}

func DefaultConfig() Config {
	return Config{
		Gravity:               Vector2{X: 0, Y: 9.81},
		Iterations:            DefaultIterations,
		SleepLinearTolerance:  0.01,
		SleepAngularTolerance: 2 * math32.Pi / 180,
		SleepTime:             0.5,
		CorrectionPercent:     0.8,
		CorrectionSlop:        0.01,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Iterations <= 0 {
		c.Iterations = def.Iterations
	}
	if c.SleepLinearTolerance <= 0 {
		c.SleepLinearTolerance = def.SleepLinearTolerance
	}
	if c.SleepAngularTolerance <= 0 {
		c.SleepAngularTolerance = def.SleepAngularTolerance
	}
	if c.SleepTime <= 0 {
		c.SleepTime = def.SleepTime
	}
	if c.CorrectionPercent < 0 || c.CorrectionPercent > 1 {
		c.CorrectionPercent = def.CorrectionPercent
	}
	if c.CorrectionSlop < 0 {
		c.CorrectionSlop = def.CorrectionSlop
	}
	return c
}
