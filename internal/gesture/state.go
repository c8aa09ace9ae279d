// Package gesture turns pan and pinch samples into a bounded transform.
package gesture

import (
	"golang.org/x/image/math/f64"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
)

// State is the live transform of one widget. Only the active gesture
// handler, or a programmatic reset, writes it; everyone else reads.
type State struct {
	Translate anim.Vector
	Scale     anim.Value
	Rotation  anim.Value
	// Rotate holds the 3D flip angles: X is rotateX, Y is rotateY.
	Rotate anim.Vector
}

// NewState returns an identity transform.
func NewState() *State {
	return &State{Scale: anim.NewValue(1)}
}

// Stop cancels every running animation on the transform.
func (s *State) Stop() {
	s.Translate.Stop()
	s.Scale.Stop()
	s.Rotation.Stop()
	s.Rotate.Stop()
}

// Snapshot is a read-only copy of a transform.
type Snapshot struct {
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Scale      float64 `json:"scale"`
	Rotation   float64 `json:"rotate"`
	RotateX    float64 `json:"rotateX"`
	RotateY    float64 `json:"rotateY"`
}

// Snapshot copies the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		TranslateX: s.Translate.X.Get(),
		TranslateY: s.Translate.Y.Get(),
		Scale:      s.Scale.Get(),
		Rotation:   s.Rotation.Get(),
		RotateX:    s.Rotate.X.Get(),
		RotateY:    s.Rotate.Y.Get(),
	}
}

// Matrix returns the affine transform a render layer applies to the
// container, with flips taken from the current 3D angles.
func (s Snapshot) Matrix() f64.Aff3 {
	return geom.TransformMatrix(
		geom.V(s.TranslateX, s.TranslateY),
		s.Scale,
		s.Rotation,
		flipped(s.RotateY),
		flipped(s.RotateX),
	)
}

// flipped reports whether a 3D flip angle shows the mirrored face.
func flipped(angle float64) bool {
	a := geom.NormalizeAngle(angle)
	return a > halfPi && a < 3*halfPi
}

// Detector is the invisible hit region gestures are attached to. Its own
// transform only follows elastic overshoot so the focal point stays aligned
// with the content; it is reset when a pinch ends.
type Detector struct {
	Size      anim.SizeVector
	Translate anim.Vector
	Scale     anim.Value
}

// NewDetector returns a detector of the given size with identity transform.
func NewDetector(size geom.Size[float64]) *Detector {
	d := &Detector{Scale: anim.NewValue(1)}
	d.Size.Set(size)
	return d
}

// Reset returns the detector transform to identity.
func (d *Detector) Reset() {
	d.Translate.Set(geom.V(0, 0))
	d.Scale.Set(1)
}

// ToCenter maps a point in detector-local coordinates (top-left origin)
// onto crop-centered coordinates.
func (d *Detector) ToCenter(p geom.Vec) geom.Vec {
	local := p.Sub(geom.Half(d.Size.Get()))
	return d.Translate.Get().Add(local.Mul(d.Scale.Get()))
}

// BoundsFunc returns the translation limits for a scale.
type BoundsFunc func(scale float64) geom.Bounds

// Kind names a gesture recognizer.
type Kind int

const (
	// None means no recognizer currently owns the transform.
	None Kind = iota
	// KindPan is the single pointer pan recognizer.
	KindPan
	// KindPinch is the two pointer pinch recognizer.
	KindPinch
)

// Arbiter lets the first recognizer that starts own the transform until it
// ends; pan and pinch race for each touch sequence.
type Arbiter struct {
	active Kind
}

// Begin claims the transform for k and reports whether k owns it.
func (a *Arbiter) Begin(k Kind) bool {
	if a.active == None || a.active == k {
		a.active = k
		return true
	}
	return false
}

// Owns reports whether k currently owns the transform.
func (a *Arbiter) Owns(k Kind) bool {
	return a.active == k
}

// End releases the transform if k owns it and reports whether it did.
func (a *Arbiter) End(k Kind) bool {
	if a.active != k {
		return false
	}
	a.active = None
	return true
}

// Release drops ownership whoever holds it.
func (a *Arbiter) Release() {
	a.active = None
}

// Active returns the owning recognizer.
func (a *Arbiter) Active() Kind {
	return a.active
}
