// Package anim drives animated values on a frame clock.
//
// A Value is a plain float cell that an animation may own. Starting a new
// animation on a Value, or writing it with Set, cancels whatever animation
// owned it before; the cancelled animation reports finished=false and never
// writes again.
package anim

import "github.com/frudas24/zoomkit/internal/geom"

// Value is an animatable float cell.
type Value struct {
	v   float64
	run *run
}

// NewValue returns a cell holding v.
func NewValue(v float64) Value {
	return Value{v: v}
}

// Get returns the current value.
func (v *Value) Get() float64 {
	return v.v
}

// Set cancels any running animation and writes x.
func (v *Value) Set(x float64) {
	v.Stop()
	v.v = x
}

// Stop cancels the running animation, leaving the value where it is.
func (v *Value) Stop() {
	if v.run != nil {
		v.run.cancelled = true
		v.run = nil
	}
}

// Animating reports whether an animation currently owns the value.
func (v *Value) Animating() bool {
	return v.run != nil
}

// Vector is an animatable x/y pair.
type Vector struct {
	X Value
	Y Value
}

// Get returns both channels.
func (v *Vector) Get() geom.Vec {
	return geom.V(v.X.Get(), v.Y.Get())
}

// Set writes both channels, cancelling their animations.
func (v *Vector) Set(p geom.Vec) {
	v.X.Set(p.X)
	v.Y.Set(p.Y)
}

// Stop cancels both channels' animations.
func (v *Vector) Stop() {
	v.X.Stop()
	v.Y.Stop()
}

// SizeVector is an animatable width/height pair.
type SizeVector struct {
	Width  Value
	Height Value
}

// Get returns both channels.
func (s *SizeVector) Get() geom.Size[float64] {
	return geom.Sz(s.Width.Get(), s.Height.Get())
}

// Set writes both channels, cancelling their animations.
func (s *SizeVector) Set(size geom.Size[float64]) {
	s.Width.Set(size.Width)
	s.Height.Set(size.Height)
}
