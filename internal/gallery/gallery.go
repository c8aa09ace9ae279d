// Package gallery pages horizontally through a list of images while the
// active one can be pinched and panned like a zoom widget.
package gallery

import (
	"errors"
	"fmt"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
)

const (
	// DefaultThreshold is the fraction of the item width a release must
	// travel to page.
	DefaultThreshold = 0.5
	// DefaultVelocityThreshold is the fling speed, in units per second,
	// that pages regardless of distance.
	DefaultVelocityThreshold = 800.0
	// zoomEpsilon separates a zoomed item from one at rest.
	zoomEpsilon = 1e-3
)

// ErrEmpty is returned when a gallery has no items.
var ErrEmpty = errors.New("gallery needs at least one item")

// Config describes a gallery.
type Config struct {
	// ItemSize is the viewport each item is shown in.
	ItemSize geom.Size[float64]
	Gap      float64
	// Items holds the native resolution of each image.
	Items             []geom.Size[float64]
	InitialIndex      int
	Threshold         float64
	VelocityThreshold float64
	// MaxScale overrides the derived per-item limit when >= 0.
	MaxScale     float64
	ScaleMode    gesture.ScaleMode
	PanWithPinch bool
	Timing       anim.TimingConfig
}

// DefaultConfig returns the gallery defaults for a viewport and its images.
func DefaultConfig(itemSize geom.Size[float64], items []geom.Size[float64]) Config {
	return Config{
		ItemSize:          itemSize,
		Items:             items,
		Threshold:         DefaultThreshold,
		VelocityThreshold: DefaultVelocityThreshold,
		MaxScale:          geom.AutoMaxScale,
		ScaleMode:         gesture.ScaleBounce,
		PanWithPinch:      true,
	}
}

// Validate checks sizes and the initial index.
func (c Config) Validate() error {
	if !geom.Valid(c.ItemSize) {
		return fmt.Errorf("item size must be positive, got %vx%v", c.ItemSize.Width, c.ItemSize.Height)
	}
	if len(c.Items) == 0 {
		return ErrEmpty
	}
	if c.Gap < 0 {
		return fmt.Errorf("gap must be >= 0, got %v", c.Gap)
	}
	if c.InitialIndex < 0 || c.InitialIndex >= len(c.Items) {
		return fmt.Errorf("initial index %d out of range [0,%d)", c.InitialIndex, len(c.Items))
	}
	return nil
}

// Snapshot is the render state of a gallery.
type Snapshot struct {
	Index  int              `json:"index"`
	Scroll float64          `json:"scroll"`
	Item   gesture.Snapshot `json:"item"`
	// Content is the displayed size of the active item at scale 1.
	Content geom.Size[float64] `json:"content"`
}

// Gallery is a single-threaded paging engine. Callers serialise access.
type Gallery struct {
	cfg    Config
	driver anim.Driver

	index  int
	scroll anim.Value

	state    *gesture.State
	detector *gesture.Detector
	arbiter  gesture.Arbiter
	pan      *gesture.Pan
	pinch    *gesture.Pinch

	paging       bool
	scrollOffset float64
	pageGen      int
}

// New returns a gallery resting on cfg.InitialIndex.
func New(cfg Config, driver anim.Driver) (*Gallery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.VelocityThreshold <= 0 {
		cfg.VelocityThreshold = DefaultVelocityThreshold
	}
	if driver == nil {
		driver = anim.Immediate{}
	}
	g := &Gallery{
		cfg:      cfg,
		driver:   driver,
		index:    cfg.InitialIndex,
		state:    gesture.NewState(),
		detector: gesture.NewDetector(cfg.ItemSize),
	}
	g.scroll.Set(g.offsetOf(g.index))

	overshoot := cfg.ItemSize.Mul(0.25)
	g.pan = gesture.NewPan(g.state, driver, g.bounds, gesture.PanOptions{
		Mode:      gesture.PanFree,
		ScaleMode: cfg.ScaleMode,
		Overshoot: overshoot,
		Timing:    cfg.Timing,
	})
	g.pinch = gesture.NewPinch(g.state, g.detector, driver, g.bounds, g.MaxScale, gesture.PinchOptions{
		ScaleMode:    cfg.ScaleMode,
		PanWithPinch: cfg.PanWithPinch,
		Overshoot:    overshoot,
		Timing:       cfg.Timing,
	})
	return g, nil
}

// Len returns the number of items.
func (g *Gallery) Len() int {
	return len(g.cfg.Items)
}

// ActiveIndex returns the settled index.
func (g *Gallery) ActiveIndex() int {
	return g.index
}

// Scroll returns the horizontal scroll offset.
func (g *Gallery) Scroll() float64 {
	return g.scroll.Get()
}

// State exposes the active item transform.
func (g *Gallery) State() *gesture.State {
	return g.state
}

// Content returns the contain fit of the active item inside the viewport.
func (g *Gallery) Content() geom.Size[float64] {
	res := g.cfg.Items[g.index]
	return geom.FitRotated(g.cfg.ItemSize, geom.AspectRatio(res), 0)
}

// DetectorSize returns the hit region size, which is the item viewport.
func (g *Gallery) DetectorSize() geom.Size[float64] {
	return g.detector.Size.Get()
}

// MaxScale returns the scale limit of the active item.
func (g *Gallery) MaxScale() float64 {
	return geom.ResolveMaxScale(g.cfg.MaxScale, g.Content(), g.cfg.Items[g.index])
}

// Snapshot copies the render state.
func (g *Gallery) Snapshot() Snapshot {
	return Snapshot{
		Index:   g.index,
		Scroll:  g.scroll.Get(),
		Item:    g.state.Snapshot(),
		Content: g.Content(),
	}
}

// bounds returns the item translation limits at scale.
func (g *Gallery) bounds(scale float64) geom.Bounds {
	return geom.ComputeBounds(g.Content(), g.cfg.ItemSize, scale, false)
}

// stride is the distance between two item origins.
func (g *Gallery) stride() float64 {
	return g.cfg.ItemSize.Width + g.cfg.Gap
}

// offsetOf returns the resting scroll of item i.
func (g *Gallery) offsetOf(i int) float64 {
	return float64(i) * g.stride()
}

// zoomed reports whether the active item is scaled past rest.
func (g *Gallery) zoomed() bool {
	return g.state.Scale.Get() > 1+zoomEpsilon
}

// PanStart begins paging at rest or an item pan while zoomed.
func (g *Gallery) PanStart() {
	if !g.arbiter.Begin(gesture.KindPan) {
		return
	}
	if g.zoomed() {
		g.paging = false
		g.pan.OnStart()
		return
	}
	g.paging = true
	g.scroll.Stop()
	g.scrollOffset = g.scroll.Get()
}

// PanChange drags the scroll or the item.
func (g *Gallery) PanChange(e gesture.PanEvent) {
	if !g.arbiter.Owns(gesture.KindPan) {
		return
	}
	if !g.paging {
		g.pan.OnChange(e)
		return
	}
	if !geom.Finite(e.Translation) {
		return
	}
	g.scroll.Set(g.resistScroll(g.scrollOffset - e.Translation.X))
}

// PanEnd pages, snaps back or settles the item pan.
func (g *Gallery) PanEnd(e gesture.PanEvent) {
	if !g.arbiter.End(gesture.KindPan) {
		return
	}
	if !g.paging {
		g.pan.OnEnd(e)
		return
	}
	g.paging = false
	g.animateTo(g.releaseTarget(e.Velocity.X))
}

// PinchStart begins a pinch on the active item.
func (g *Gallery) PinchStart(e gesture.PinchEvent) {
	if g.arbiter.Begin(gesture.KindPinch) {
		g.pinch.OnStart(e)
	}
}

// PinchUpdate applies a pinch sample to the active item.
func (g *Gallery) PinchUpdate(e gesture.PinchEvent) {
	if g.arbiter.Owns(gesture.KindPinch) {
		g.pinch.OnUpdate(e)
	}
}

// PinchEnd releases the pinch.
func (g *Gallery) PinchEnd() {
	if g.arbiter.End(gesture.KindPinch) {
		g.pinch.OnEnd()
	}
}

// SetIndex moves to item i, clamped to the list.
func (g *Gallery) SetIndex(i int, animate bool) {
	i = clampIndex(i, g.Len())
	if !animate {
		g.pageGen++
		g.scroll.Set(g.offsetOf(i))
		g.settle(i)
		return
	}
	g.animateTo(i)
}

// Reset returns the active item transform to identity.
func (g *Gallery) Reset(animate bool) {
	g.detector.Reset()
	if !animate {
		g.state.Translate.Set(geom.V(0, 0))
		g.state.Scale.Set(1)
		return
	}
	g.driver.Timing(&g.state.Translate.X, 0, g.cfg.Timing, nil)
	g.driver.Timing(&g.state.Translate.Y, 0, g.cfg.Timing, nil)
	g.driver.Timing(&g.state.Scale, 1, g.cfg.Timing, nil)
}

// releaseTarget picks the page a released drag settles on.
func (g *Gallery) releaseTarget(velocity float64) int {
	d := g.scroll.Get() - g.offsetOf(g.index)
	target := g.index
	switch {
	case d > g.cfg.Threshold*g.cfg.ItemSize.Width || velocity < -g.cfg.VelocityThreshold:
		target++
	case d < -g.cfg.Threshold*g.cfg.ItemSize.Width || velocity > g.cfg.VelocityThreshold:
		target--
	}
	return clampIndex(target, g.Len())
}

// animateTo scrolls to item i; the index and item transform change only
// once the scroll lands.
func (g *Gallery) animateTo(i int) {
	g.pageGen++
	gen := g.pageGen
	g.driver.Timing(&g.scroll, g.offsetOf(i), g.cfg.Timing, func(finished bool) {
		if finished && gen == g.pageGen {
			g.settle(i)
		}
	})
}

// settle commits index i.
func (g *Gallery) settle(i int) {
	if i == g.index {
		return
	}
	g.index = i
	g.Reset(false)
}

// resistScroll rubber-bands the scroll past the first and last item.
func (g *Gallery) resistScroll(s float64) float64 {
	last := g.offsetOf(g.Len() - 1)
	limit := g.cfg.ItemSize.Width / 4
	switch {
	case s < 0:
		return -geom.RubberBand(-s, limit)
	case s > last:
		return last + geom.RubberBand(s-last, limit)
	default:
		return s
	}
}

// clampIndex bounds i to [0, n).
func clampIndex(i, n int) int {
	return max(0, min(n-1, i))
}
