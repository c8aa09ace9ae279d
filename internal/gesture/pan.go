package gesture

import (
	"math"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
)

// PanOptions configures a Pan handler.
type PanOptions struct {
	Mode PanMode
	// Decay lets a released pan coast with its velocity inside the bounds.
	Decay bool
	// ScaleMode decides whether non-clamp modes may overshoot the bounds;
	// only ScaleBounce is elastic.
	ScaleMode ScaleMode
	// Overshoot is the per-axis rubber band limit for elastic modes.
	Overshoot geom.Size[float64]
	Timing    anim.TimingConfig
}

// Pan translates pan samples into a bounded translation.
type Pan struct {
	state  *State
	driver anim.Driver
	bounds BoundsFunc
	opts   PanOptions

	active bool
	offset geom.Vec
}

// NewPan returns a pan handler writing into state.
func NewPan(state *State, driver anim.Driver, bounds BoundsFunc, opts PanOptions) *Pan {
	return &Pan{state: state, driver: driver, bounds: bounds, opts: opts}
}

// Active reports whether a pan is in progress.
func (p *Pan) Active() bool {
	return p.active
}

// OnStart snapshots the translation and stops any animation on it. Calling
// it again while active re-snapshots.
func (p *Pan) OnStart() {
	p.state.Translate.Stop()
	p.offset = p.state.Translate.Get()
	p.active = true
}

// OnChange applies the accumulated drag.
func (p *Pan) OnChange(e PanEvent) {
	if !p.active || !geom.Finite(e.Translation) {
		return
	}
	p.state.Translate.Set(p.candidate(e.Translation))
}

// OnEnd settles the translation. An end without a start is ignored.
func (p *Pan) OnEnd(e PanEvent) {
	if !p.active {
		return
	}
	p.active = false
	p.Settle(e.Velocity)
}

// Cancel drops an active pan without settling; later samples are ignored
// until the next start.
func (p *Pan) Cancel() {
	p.active = false
}

// Settle pulls an out of bounds translation back in, or lets it coast with
// velocity when decay is enabled.
func (p *Pan) Settle(velocity geom.Vec) {
	b := p.bounds(p.state.Scale.Get())
	p.settleAxis(&p.state.Translate.X, b.X, velocity.X, p.opts.Mode != PanVertical)
	p.settleAxis(&p.state.Translate.Y, b.Y, velocity.Y, p.opts.Mode != PanHorizontal)
}

// settleAxis settles one translation channel.
func (p *Pan) settleAxis(v *anim.Value, bound, velocity float64, free bool) {
	x := v.Get()
	if math.Abs(x) > bound {
		p.driver.Timing(v, geom.Clamp(x, -bound, bound), p.opts.Timing, nil)
		return
	}
	if !p.opts.Decay || !free || velocity == 0 || math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return
	}
	p.driver.Decay(v, anim.DecayConfig{Velocity: velocity, Clamp: true, Min: -bound, Max: bound}, nil)
}

// candidate maps an accumulated drag onto a translation under the mode.
func (p *Pan) candidate(drag geom.Vec) geom.Vec {
	to := p.offset.Add(drag)
	b := p.bounds(p.state.Scale.Get())

	switch {
	case p.opts.Mode == PanClamp:
		return b.Clamp(to)
	case p.opts.ScaleMode == ScaleBounce:
		to = geom.ResistVec(to, b, p.opts.Overshoot)
	default:
		to = b.Clamp(to)
	}
	switch p.opts.Mode {
	case PanHorizontal:
		to.Y = p.offset.Y
	case PanVertical:
		to.X = p.offset.X
	}
	return to
}
