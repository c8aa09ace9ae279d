// Package geom holds the vector primitives and the pure transform math shared
// by the zoom widgets.
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar is a numeric type a vector channel can hold.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Vector2 holds independent x/y channels.
type Vector2[T Scalar] struct {
	X T `json:"x" yaml:"x"`
	Y T `json:"y" yaml:"y"`
}

// Vec is the float64 vector used by all transform math.
type Vec = Vector2[float64]

// V returns a float64 vector.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2[T]) Add(o Vector2[T]) Vector2[T] {
	return Vector2[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2[T]) Sub(o Vector2[T]) Vector2[T] {
	return Vector2[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales both channels by k.
func (v Vector2[T]) Mul(k T) Vector2[T] {
	return Vector2[T]{X: v.X * k, Y: v.Y * k}
}

// Set overwrites both channels in place.
func (v *Vector2[T]) Set(x, y T) {
	v.X = x
	v.Y = y
}

// Float converts the vector to float64 channels.
func (v Vector2[T]) Float() Vec {
	return Vec{X: float64(v.X), Y: float64(v.Y)}
}

// Rotate rotates v by angle radians (clockwise on a y-down screen).
func Rotate(v Vec, angle float64) Vec {
	if angle == 0 {
		return v
	}
	sin, cos := math.Sincos(angle)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Finite reports whether both channels are finite numbers.
func Finite(v Vec) bool {
	return finite(v.X) && finite(v.Y)
}

// Size holds independent width/height channels.
type Size[T Scalar] struct {
	Width  T `json:"width" yaml:"width"`
	Height T `json:"height" yaml:"height"`
}

// Sz returns a float64 size.
func Sz(width, height float64) Size[float64] {
	return Size[float64]{Width: width, Height: height}
}

// Swap exchanges width and height.
func (s Size[T]) Swap() Size[T] {
	return Size[T]{Width: s.Height, Height: s.Width}
}

// Area returns width * height.
func (s Size[T]) Area() T {
	return s.Width * s.Height
}

// Mul scales both channels by k.
func (s Size[T]) Mul(k T) Size[T] {
	return Size[T]{Width: s.Width * k, Height: s.Height * k}
}

// Float converts the size to float64 channels.
func (s Size[T]) Float() Size[float64] {
	return Size[float64]{Width: float64(s.Width), Height: float64(s.Height)}
}

// Half returns the size halved as a vector, i.e. the offset of its center.
func Half(s Size[float64]) Vec {
	return Vec{X: s.Width / 2, Y: s.Height / 2}
}

// Valid reports whether both channels are finite and strictly positive.
func Valid(s Size[float64]) bool {
	return finite(s.Width) && finite(s.Height) && s.Width > 0 && s.Height > 0
}

// AspectRatio returns width / height, or 0 for degenerate sizes.
func AspectRatio(s Size[float64]) float64 {
	if !Valid(s) {
		return 0
	}
	return s.Width / s.Height
}

// Clamp bounds v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v >= lo {
		return v
	}
	return lo
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
