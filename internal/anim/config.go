package anim

import (
	"math"
	"time"
)

// DefaultDuration matches the stock timing animation length.
const DefaultDuration = 300 * time.Millisecond

// DefaultDeceleration is the per-millisecond velocity retention of a decay.
const DefaultDeceleration = 0.998

// restVelocity is the speed, in units per second, below which a decay stops.
const restVelocity = 0.5

// Easing maps linear progress in [0,1] onto eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOutQuad accelerates then decelerates quadratically.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutCubic decelerates towards the target.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EasingByName resolves a config name; unknown names give EaseInOutQuad.
func EasingByName(name string) Easing {
	switch name {
	case "linear":
		return Linear
	case "easeOutCubic", "ease-out-cubic":
		return EaseOutCubic
	default:
		return EaseInOutQuad
	}
}

// TimingConfig describes a duration-based animation.
type TimingConfig struct {
	Duration     time.Duration
	Easing       Easing
	ReduceMotion bool
}

// withDefaults fills unset fields.
func (c TimingConfig) withDefaults() TimingConfig {
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Easing == nil {
		c.Easing = EaseInOutQuad
	}
	return c
}

// DecayConfig describes a velocity-based deceleration.
type DecayConfig struct {
	// Velocity is the initial speed in units per second.
	Velocity float64
	// Deceleration is the per-millisecond retention in (0,1).
	Deceleration float64
	// Clamp stops the decay at [Min, Max] when set.
	Clamp    bool
	Min, Max float64
}

// rate returns the exponential decay constant per second.
func (c DecayConfig) rate() float64 {
	d := c.Deceleration
	if d <= 0 || d >= 1 || math.IsNaN(d) {
		d = DefaultDeceleration
	}
	return -math.Log(d) * 1000
}

// Project returns where a decay starting at from comes to rest.
func Project(cfg DecayConfig, from float64) float64 {
	if math.IsNaN(cfg.Velocity) || math.IsInf(cfg.Velocity, 0) {
		return from
	}
	to := from + cfg.Velocity/cfg.rate()
	if cfg.Clamp {
		to = math.Max(cfg.Min, math.Min(cfg.Max, to))
	}
	return to
}
