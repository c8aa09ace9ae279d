package geom

// PivotTransform returns the translation that keeps origin visually fixed
// while the content scales by ratio and rotates by angle relative to the
// gesture start, then adds the two-finger drag delta.
//
// With angle 0 this is offset + (origin - offset) * (1 - ratio) + delta.
func PivotTransform(offset, origin Vec, ratio, angle float64, delta Vec) Vec {
	arm := Rotate(offset.Sub(origin), angle).Mul(ratio)
	return origin.Add(arm).Add(delta)
}
