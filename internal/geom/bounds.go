package geom

import "math"

const quarterTurn = math.Pi / 2

// Bounds is the maximum absolute translation allowed on each axis.
type Bounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ComputeBounds returns how far a container scaled by scale may travel before
// it uncovers part of the crop box. The container is measured in its own
// unrotated frame, so an odd quarter turn swaps its width and height first.
func ComputeBounds(container, crop Size[float64], scale float64, quarterTurned bool) Bounds {
	if quarterTurned {
		container = container.Swap()
	}
	b := Bounds{
		X: math.Max(0, container.Width*scale-crop.Width) / 2,
		Y: math.Max(0, container.Height*scale-crop.Height) / 2,
	}
	if !finite(b.X) {
		b.X = 0
	}
	if !finite(b.Y) {
		b.Y = 0
	}
	return b
}

// Clamp limits v to the bounds on both axes.
func (b Bounds) Clamp(v Vec) Vec {
	return Vec{X: Clamp(v.X, -b.X, b.X), Y: Clamp(v.Y, -b.Y, b.Y)}
}

// Contains reports whether v lies inside the bounds, allowing for float drift.
func (b Bounds) Contains(v Vec) bool {
	const eps = 1e-9
	return math.Abs(v.X) <= b.X+eps && math.Abs(v.Y) <= b.Y+eps
}

// IsQuarterTurned reports whether angle is closest to an odd multiple of 90°.
func IsQuarterTurned(angle float64) bool {
	if !finite(angle) {
		return false
	}
	turns := math.Round(angle / quarterTurn)
	return math.Mod(math.Abs(turns), 2) == 1
}

// NormalizeAngle wraps angle into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	if !finite(angle) {
		return 0
	}
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// snap float residue left over from repeated quarter turns
	if math.Abs(a-2*math.Pi) < 1e-9 || math.Abs(a) < 1e-9 {
		return 0
	}
	return a
}
