// Package snapback implements a zoom that follows a pinch with two-finger
// pan and free rotation, then springs back to rest when the fingers lift.
package snapback

import (
	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
)

// minOvershoot is the rubber band limit below scale 1.
const minOvershoot = 0.5

// ResizeConfig grows the element from Size towards the full image aspect
// as the scale goes from 1 to Scale.
type ResizeConfig struct {
	Size        geom.Size[float64] `json:"size" yaml:"size"`
	AspectRatio float64            `json:"aspectRatio" yaml:"aspectRatio"`
	Scale       float64            `json:"scale" yaml:"scale"`
}

// Resized returns the element size at scale. Outside a usable config the
// base size is returned.
func (c ResizeConfig) Resized(scale float64) geom.Size[float64] {
	if !geom.Valid(c.Size) || c.AspectRatio <= 0 || c.Scale <= 1 {
		return c.Size
	}
	full := geom.RotatedSize(c.Size, c.AspectRatio, 0)
	p := geom.Clamp((scale-1)/(c.Scale-1), 0, 1)
	return geom.Size[float64]{
		Width:  c.Size.Width + (full.Width-c.Size.Width)*p,
		Height: c.Size.Height + (full.Height-c.Size.Height)*p,
	}
}

// Config describes a snap-back element.
type Config struct {
	// Size is the element size; focal points are relative to its top-left.
	Size   geom.Size[float64]
	Resize *ResizeConfig
	Timing anim.TimingConfig
}

// Snapshot is the render state of the element.
type Snapshot struct {
	gesture.Snapshot
	ResizedWidth  float64 `json:"resizedWidth"`
	ResizedHeight float64 `json:"resizedHeight"`
	// Footprint is the on-screen bounding box of the scaled, rotated element.
	Footprint geom.Size[float64] `json:"footprint"`
}

// SnapBack is single-threaded; callers serialise access.
type SnapBack struct {
	cfg    Config
	driver anim.Driver
	state  *gesture.State

	active       bool
	origin       geom.Vec
	initialFocal geom.Vec
	gen          int
	onEnd        func()
}

// New returns an element at rest.
func New(cfg Config, driver anim.Driver) *SnapBack {
	if driver == nil {
		driver = anim.Immediate{}
	}
	return &SnapBack{cfg: cfg, driver: driver, state: gesture.NewState()}
}

// OnGestureEnd registers fn to run once the scale has settled back to 1.
func (s *SnapBack) OnGestureEnd(fn func()) {
	s.onEnd = fn
}

// State exposes the live transform.
func (s *SnapBack) State() *gesture.State {
	return s.state
}

// Active reports whether a pinch is in progress.
func (s *SnapBack) Active() bool {
	return s.active
}

// PinchStart anchors the pinch at the focal point and stops a running snap back.
func (s *SnapBack) PinchStart(e gesture.PinchEvent) {
	if !geom.Finite(e.Focal) {
		return
	}
	s.gen++
	s.state.Stop()
	s.origin = e.Focal.Sub(geom.Half(s.size()))
	s.initialFocal = e.Focal
	s.active = true
}

// PinchUpdate follows the fingers: scale and rotation about the focal
// origin plus the focal drift.
func (s *SnapBack) PinchUpdate(e gesture.PinchEvent) {
	if !s.active || !geom.Finite(e.Focal) || !(e.Scale > 0) || !geom.Finite(geom.V(e.Scale, e.Rotation)) {
		return
	}
	scale := e.Scale
	if scale < 1 {
		scale = 1 - geom.RubberBand(1-scale, minOvershoot)
	}
	delta := e.Focal.Sub(s.initialFocal)
	s.state.Scale.Set(scale)
	s.state.Rotation.Set(e.Rotation)
	s.state.Translate.Set(geom.PivotTransform(geom.Vec{}, s.origin, scale, e.Rotation, delta))
}

// PinchEnd springs every channel back to rest.
func (s *SnapBack) PinchEnd() {
	if !s.active {
		return
	}
	s.active = false
	gen := s.gen
	t := s.cfg.Timing
	s.driver.Timing(&s.state.Translate.X, 0, t, nil)
	s.driver.Timing(&s.state.Translate.Y, 0, t, nil)
	s.driver.Timing(&s.state.Rotation, 0, t, nil)
	s.driver.Timing(&s.state.Scale, 1, t, func(finished bool) {
		if finished && gen == s.gen && s.onEnd != nil {
			s.onEnd()
		}
	})
}

// Snapshot copies the render state.
func (s *SnapBack) Snapshot() Snapshot {
	snap := s.state.Snapshot()
	size := s.size()
	if s.cfg.Resize != nil {
		size = s.cfg.Resize.Resized(snap.Scale)
	}
	return Snapshot{
		Snapshot:      snap,
		ResizedWidth:  size.Width,
		ResizedHeight: size.Height,
		Footprint:     geom.RotatedBounds(size.Mul(snap.Scale), snap.Rotation),
	}
}

// size returns the element size, preferring the resize base when set.
func (s *SnapBack) size() geom.Size[float64] {
	if s.cfg.Resize != nil && geom.Valid(s.cfg.Resize.Size) {
		return s.cfg.Resize.Size
	}
	return s.cfg.Size
}
