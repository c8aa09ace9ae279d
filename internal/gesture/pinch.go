package gesture

import (
	"math"

	"cogentcore.org/core/math32/minmax"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
)

// DefaultScaleOvershoot is the rubber band limit of a bouncing scale, as a
// fraction of the violated range edge.
const DefaultScaleOvershoot = 0.5

// PinchOptions configures a Pinch handler.
type PinchOptions struct {
	ScaleMode    ScaleMode
	PanWithPinch bool
	// MinScale is the settled lower scale limit; zero means geom.MinScale.
	MinScale float64
	// Overshoot is the per-axis rubber band limit for translation.
	Overshoot geom.Size[float64]
	// ScaleOvershoot overrides DefaultScaleOvershoot when positive.
	ScaleOvershoot float64
	Timing         anim.TimingConfig
}

// Pinch translates pinch samples into a bounded scale and a translation
// anchored at the focal point.
type Pinch struct {
	state    *State
	detector *Detector
	driver   anim.Driver
	bounds   BoundsFunc
	maxScale func() float64
	opts     PinchOptions

	active       bool
	scaleOffset  float64
	offset       geom.Vec
	origin       geom.Vec
	initialFocal geom.Vec
	focal        geom.Vec
}

// NewPinch returns a pinch handler writing into state. maxScale is read on
// every update because it depends on the current container size.
func NewPinch(state *State, detector *Detector, driver anim.Driver, bounds BoundsFunc, maxScale func() float64, opts PinchOptions) *Pinch {
	if opts.ScaleOvershoot <= 0 {
		opts.ScaleOvershoot = DefaultScaleOvershoot
	}
	return &Pinch{
		state:    state,
		detector: detector,
		driver:   driver,
		bounds:   bounds,
		maxScale: maxScale,
		opts:     opts,
	}
}

// Active reports whether a pinch is in progress.
func (p *Pinch) Active() bool {
	return p.active
}

// Range returns the settled scale range.
func (p *Pinch) Range() minmax.F64 {
	return geom.ScaleRange(p.opts.MinScale, p.maxScale())
}

// OnStart snapshots scale, translation and the focal origin.
func (p *Pinch) OnStart(e PinchEvent) {
	if !geom.Finite(e.Focal) {
		return
	}
	p.state.Translate.Stop()
	p.state.Scale.Stop()

	p.scaleOffset = p.state.Scale.Get()
	if p.scaleOffset <= 0 || math.IsNaN(p.scaleOffset) || math.IsInf(p.scaleOffset, 0) {
		p.scaleOffset = 1
		p.state.Scale.Set(1)
	}
	p.offset = p.state.Translate.Get()
	p.origin = p.detector.ToCenter(e.Focal)
	p.focal = p.origin
	p.initialFocal = e.Focal
	p.active = true
}

// OnUpdate applies the pinch factor around the focal origin.
func (p *Pinch) OnUpdate(e PinchEvent) {
	if !p.active || !e.valid() {
		return
	}
	rng := p.Range()
	raw := p.scaleOffset * e.Scale
	to := rng.ClampValue(raw)
	if p.opts.ScaleMode == ScaleBounce {
		to = geom.ResistScale(raw, rng, p.opts.ScaleOvershoot)
	}

	var delta geom.Vec
	if p.opts.PanWithPinch {
		delta = e.Focal.Sub(p.initialFocal)
	}
	t := geom.PivotTransform(p.offset, p.origin, to/p.scaleOffset, 0, delta)
	b := p.bounds(to)
	if p.opts.ScaleMode == ScaleClamp {
		t = b.Clamp(t)
	} else {
		t = geom.ResistVec(t, b, p.opts.Overshoot)
	}
	if !geom.Finite(t) {
		return
	}

	p.state.Scale.Set(to)
	p.state.Translate.Set(t)
	p.focal = p.origin.Add(delta)

	// the hit region follows only the elastic excess
	p.detector.Scale.Set(to / rng.ClampValue(to))
	p.detector.Translate.Set(t.Sub(b.Clamp(t)))
}

// OnEnd resets the detector and snaps scale and translation back into
// range. An end without a start is ignored.
func (p *Pinch) OnEnd() {
	if !p.active {
		return
	}
	p.active = false
	p.detector.Reset()

	rng := p.Range()
	scale := p.state.Scale.Get()
	translate := p.state.Translate.Get()
	target := rng.ClampValue(scale)

	if target != scale {
		to := geom.PivotTransform(translate, p.focal, target/scale, 0, geom.Vec{})
		to = p.bounds(target).Clamp(to)
		p.driver.Timing(&p.state.Scale, target, p.opts.Timing, nil)
		p.animateTranslate(to)
		return
	}
	b := p.bounds(scale)
	if !b.Contains(translate) {
		p.animateTranslate(b.Clamp(translate))
	}
}

// Cancel drops an active pinch without settling and resets the detector.
func (p *Pinch) Cancel() {
	p.active = false
	p.detector.Reset()
}

// animateTranslate animates both translation channels.
func (p *Pinch) animateTranslate(to geom.Vec) {
	p.driver.Timing(&p.state.Translate.X, to.X, p.opts.Timing, nil)
	p.driver.Timing(&p.state.Translate.Y, to.Y, p.opts.Timing, nil)
}
