package geom

import "math"

// RubberBand maps an overshoot distance onto a resisted one using
// x / (1 + x/limit). The result approaches limit but never reaches it.
// A non-positive limit disables overshoot entirely.
func RubberBand(overshoot, limit float64) float64 {
	if limit <= 0 || !finite(limit) || overshoot <= 0 || math.IsNaN(overshoot) {
		return 0
	}
	if math.IsInf(overshoot, 1) {
		return limit
	}
	return overshoot / (1 + overshoot/limit)
}

// Resist keeps v inside [-bound, bound] plus a rubber-banded overshoot.
func Resist(v, bound, limit float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > bound:
		return bound + RubberBand(v-bound, limit)
	case v < -bound:
		return -bound - RubberBand(-bound-v, limit)
	default:
		return v
	}
}

// ResistVec applies Resist per axis with per-axis limits.
func ResistVec(v Vec, b Bounds, limit Size[float64]) Vec {
	return Vec{X: Resist(v.X, b.X, limit.Width), Y: Resist(v.Y, b.Y, limit.Height)}
}
