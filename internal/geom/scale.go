package geom

import (
	"math"

	"cogentcore.org/core/math32/minmax"
)

// MinScale is the smallest settled scale; at 1 the container exactly covers the crop box.
const MinScale = 1.0

// AutoMaxScale is the sentinel asking ResolveMaxScale to derive the limit.
const AutoMaxScale = -1.0

// MaxScale returns the scale at which one container unit shows exactly one
// native source pixel, floored at MinScale. Degenerate sizes give MinScale.
func MaxScale(container, resolution Size[float64]) float64 {
	if !Valid(container) || !Valid(resolution) {
		return MinScale
	}
	s := math.Max(resolution.Width/container.Width, resolution.Height/container.Height)
	if !finite(s) {
		return MinScale
	}
	return math.Max(MinScale, s)
}

// ResolveMaxScale prefers an explicit user limit (>= 0) over the derived one.
func ResolveMaxScale(user float64, container, resolution Size[float64]) float64 {
	if user >= 0 && finite(user) {
		return user
	}
	return MaxScale(container, resolution)
}

// CoverScale returns the minimum scale at which image covers target.
// Degenerate sizes give MinScale.
func CoverScale(target, image Size[float64]) float64 {
	if !Valid(target) || !Valid(image) {
		return MinScale
	}
	return math.Max(target.Width/image.Width, target.Height/image.Height)
}

// ScaleRange builds the settled scale range, never inverted.
func ScaleRange(lo, hi float64) minmax.F64 {
	if !finite(lo) || lo <= 0 {
		lo = MinScale
	}
	if !finite(hi) || hi < lo {
		hi = lo
	}
	return minmax.F64{Min: lo, Max: hi}
}

// ResistScale lets raw overshoot rng elastically. The overshoot limit is
// ratio times the violated edge of the range.
func ResistScale(raw float64, rng minmax.F64, ratio float64) float64 {
	if !finite(raw) {
		return rng.ClampValue(MinScale)
	}
	if rng.InRange(raw) {
		return raw
	}
	if rng.IsLow(raw) {
		return rng.Min - RubberBand(rng.Min-raw, rng.Min*ratio)
	}
	return rng.Max + RubberBand(raw-rng.Max, rng.Max*ratio)
}
