package anim

import (
	"math"
	"time"
)

// Done is called once per animation. finished is false when the animation
// was cancelled before reaching its target.
type Done func(finished bool)

// Driver starts animations on values.
type Driver interface {
	// Timing animates v to target over cfg.Duration.
	Timing(v *Value, target float64, cfg TimingConfig, done Done)
	// Decay lets v coast with cfg.Velocity until it rests or hits the clamp.
	Decay(v *Value, cfg DecayConfig, done Done)
}

var (
	_ Driver = (*Timeline)(nil)
	_ Driver = Immediate{}
)

type runKind int

const (
	runTiming runKind = iota
	runDecay
)

type run struct {
	value     *Value
	kind      runKind
	from      float64
	to        float64
	elapsed   time.Duration
	timing    TimingConfig
	decay     DecayConfig
	done      Done
	cancelled bool
}

// step advances the run by dt and reports whether it reached its end.
func (r *run) step(dt time.Duration) bool {
	r.elapsed += dt
	switch r.kind {
	case runDecay:
		return r.stepDecay()
	default:
		p := float64(r.elapsed) / float64(r.timing.Duration)
		if p >= 1 {
			r.value.v = r.to
			return true
		}
		r.value.v = r.from + (r.to-r.from)*r.timing.Easing(p)
		return false
	}
}

// stepDecay evaluates the closed-form decay at the current elapsed time.
func (r *run) stepDecay() bool {
	k := r.decay.rate()
	t := r.elapsed.Seconds()
	fall := math.Exp(-k * t)
	x := r.from + r.decay.Velocity/k*(1-fall)
	speed := math.Abs(r.decay.Velocity * fall)

	if r.decay.Clamp {
		if x <= r.decay.Min {
			r.value.v = r.decay.Min
			return true
		}
		if x >= r.decay.Max {
			r.value.v = r.decay.Max
			return true
		}
	}
	r.value.v = x
	return speed < restVelocity
}

// Timeline is a frame-driven Driver. It is not safe for concurrent use; the
// owner serialises Tick with the code that starts animations.
type Timeline struct {
	runs []*run
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Timing implements Driver.
func (tl *Timeline) Timing(v *Value, target float64, cfg TimingConfig, done Done) {
	cfg = cfg.withDefaults()
	if cfg.ReduceMotion || cfg.Duration < 0 || !finite(target) {
		Immediate{}.Timing(v, target, cfg, done)
		return
	}
	tl.start(&run{value: v, kind: runTiming, from: v.Get(), to: target, timing: cfg, done: done})
}

// Decay implements Driver.
func (tl *Timeline) Decay(v *Value, cfg DecayConfig, done Done) {
	if cfg.Velocity == 0 || math.IsNaN(cfg.Velocity) || math.IsInf(cfg.Velocity, 0) {
		Immediate{}.Decay(v, cfg, done)
		return
	}
	tl.start(&run{value: v, kind: runDecay, from: v.Get(), decay: cfg, done: done})
}

// start replaces any run owning the same value.
func (tl *Timeline) start(r *run) {
	r.value.Stop()
	r.value.run = r
	tl.runs = append(tl.runs, r)
}

// Tick advances every live animation by dt. Completion callbacks run after
// all values for this frame have been written. It reports whether any value
// changed or any animation ended.
func (tl *Timeline) Tick(dt time.Duration) bool {
	if len(tl.runs) == 0 {
		return false
	}
	current := tl.runs
	tl.runs = nil

	var ended []*run
	live := make([]*run, 0, len(current))
	for _, r := range current {
		if r.cancelled {
			ended = append(ended, r)
			continue
		}
		if r.step(dt) {
			r.value.run = nil
			ended = append(ended, r)
			continue
		}
		live = append(live, r)
	}
	// callbacks below may start new runs; keep them
	tl.runs = append(live, tl.runs...)

	for _, r := range ended {
		if r.done != nil {
			r.done(!r.cancelled)
		}
	}
	return true
}

// Active reports whether any animation is still running.
func (tl *Timeline) Active() bool {
	for _, r := range tl.runs {
		if !r.cancelled {
			return true
		}
	}
	return false
}

// Settle ticks until every animation has ended or maxFrames is reached.
func (tl *Timeline) Settle(frame time.Duration, maxFrames int) {
	for i := 0; i < maxFrames && len(tl.runs) > 0; i++ {
		tl.Tick(frame)
	}
}

// Immediate is a Driver that jumps straight to the final value, used when
// motion is reduced or no frame clock exists.
type Immediate struct{}

// Timing implements Driver. A non-finite target is refused.
func (Immediate) Timing(v *Value, target float64, _ TimingConfig, done Done) {
	ok := finite(target)
	if ok {
		v.Set(target)
	} else {
		v.Stop()
	}
	if done != nil {
		done(ok)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Decay implements Driver.
func (Immediate) Decay(v *Value, cfg DecayConfig, done Done) {
	v.Set(Project(cfg, v.Get()))
	if done != nil {
		done(true)
	}
}
