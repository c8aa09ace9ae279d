package geom

// FromNormalized maps normalized [0..1] coordinates onto a region of the
// given size. Out of range inputs are clamped to the region edges.
func FromNormalized(xn, yn float64, region Size[float64]) Vec {
	return Vec{X: clamp01(xn) * region.Width, Y: clamp01(yn) * region.Height}
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
