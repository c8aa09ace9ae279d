// Package cropzoom implements the crop widget: a container that covers a
// fixed crop box and can be panned, pinched, rotated in quarter turns,
// flipped and finally resolved into a pixel crop.
package cropzoom

import (
	"math"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/crop"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
)

const quarterTurn = math.Pi / 2

// Snapshot is what a render layer needs to draw the widget.
type Snapshot struct {
	gesture.Snapshot
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	FlipHorizontal bool    `json:"flipHorizontal"`
	FlipVertical   bool    `json:"flipVertical"`
	MaxScale       float64 `json:"maxScale"`
}

// CropZoom is a single-threaded crop widget. Callers serialise access.
type CropZoom struct {
	cfg    Config
	driver anim.Driver

	state     *gesture.State
	detector  *gesture.Detector
	container anim.SizeVector

	arbiter gesture.Arbiter
	pan     *gesture.Pan
	pinch   *gesture.Pinch

	flipH, flipV bool
	canRotate    bool
	rotateGen    int
}

// New returns a widget for cfg whose animations run on driver.
func New(cfg Config, driver anim.Driver) (*CropZoom, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if driver == nil {
		driver = anim.Immediate{}
	}
	cz := &CropZoom{
		cfg:       cfg,
		driver:    driver,
		state:     gesture.NewState(),
		canRotate: true,
	}
	size := cz.containerSize(0)
	cz.container.Set(size)
	cz.detector = gesture.NewDetector(size)

	overshoot := cfg.CropSize.Mul(0.25)
	cz.pan = gesture.NewPan(cz.state, driver, cz.bounds, gesture.PanOptions{
		Mode:      cfg.PanMode,
		Decay:     cfg.Decay,
		ScaleMode: cfg.ScaleMode,
		Overshoot: overshoot,
		Timing:    cfg.Timing,
	})
	cz.pinch = gesture.NewPinch(cz.state, cz.detector, driver, cz.bounds, cz.MaxScale, gesture.PinchOptions{
		ScaleMode:    cfg.ScaleMode,
		PanWithPinch: cfg.PanWithPinch,
		Overshoot:    overshoot,
		Timing:       cfg.Timing,
	})
	return cz, nil
}

// Config returns the widget configuration.
func (cz *CropZoom) Config() Config {
	return cz.cfg
}

// State exposes the live transform for readers.
func (cz *CropZoom) State() *gesture.State {
	return cz.state
}

// Container returns the current unrotated container size.
func (cz *CropZoom) Container() geom.Size[float64] {
	return cz.container.Get()
}

// DetectorSize returns the current hit region size.
func (cz *CropZoom) DetectorSize() geom.Size[float64] {
	return cz.detector.Size.Get()
}

// MaxScale returns the effective scale limit for the current container.
func (cz *CropZoom) MaxScale() float64 {
	return geom.ResolveMaxScale(cz.cfg.MaxScale, cz.container.Get(), cz.cfg.Resolution)
}

// Bounds returns the translation limits at the current scale.
func (cz *CropZoom) Bounds() geom.Bounds {
	return cz.bounds(cz.state.Scale.Get())
}

// bounds returns the translation limits at scale for the current rotation parity.
func (cz *CropZoom) bounds(scale float64) geom.Bounds {
	quarter := geom.IsQuarterTurned(cz.state.Rotation.Get())
	return geom.ComputeBounds(cz.container.Get(), cz.cfg.CropSize, scale, quarter)
}

// containerSize returns the container that covers the crop box at angle.
func (cz *CropZoom) containerSize(angle float64) geom.Size[float64] {
	return geom.RotatedSize(cz.cfg.CropSize, geom.AspectRatio(cz.cfg.Resolution), angle)
}

// Snapshot copies the render state.
func (cz *CropZoom) Snapshot() Snapshot {
	size := cz.container.Get()
	return Snapshot{
		Snapshot:       cz.state.Snapshot(),
		Width:          size.Width,
		Height:         size.Height,
		FlipHorizontal: cz.flipH,
		FlipVertical:   cz.flipV,
		MaxScale:       cz.MaxScale(),
	}
}

// Gesturing reports whether a pan or pinch owns the transform.
func (cz *CropZoom) Gesturing() bool {
	return cz.arbiter.Active() != gesture.None
}

// PanStart begins a single pointer pan unless a pinch owns the transform.
func (cz *CropZoom) PanStart() {
	if cz.arbiter.Begin(gesture.KindPan) {
		cz.pan.OnStart()
	}
}

// PanChange applies a pan sample.
func (cz *CropZoom) PanChange(e gesture.PanEvent) {
	if cz.arbiter.Owns(gesture.KindPan) {
		cz.pan.OnChange(e)
	}
}

// PanEnd releases the pan.
func (cz *CropZoom) PanEnd(e gesture.PanEvent) {
	if cz.arbiter.End(gesture.KindPan) {
		cz.pan.OnEnd(e)
	}
}

// PinchStart begins a pinch unless a pan owns the transform.
func (cz *CropZoom) PinchStart(e gesture.PinchEvent) {
	if cz.arbiter.Begin(gesture.KindPinch) {
		cz.pinch.OnStart(e)
	}
}

// PinchUpdate applies a pinch sample.
func (cz *CropZoom) PinchUpdate(e gesture.PinchEvent) {
	if cz.arbiter.Owns(gesture.KindPinch) {
		cz.pinch.OnUpdate(e)
	}
}

// PinchEnd releases the pinch.
func (cz *CropZoom) PinchEnd() {
	if cz.arbiter.End(gesture.KindPinch) {
		cz.pinch.OnEnd()
	}
}

// Rotate turns the content a quarter turn clockwise and recenters it. A
// rotation already in flight makes the call a no-op; it reports whether the
// turn was accepted.
func (cz *CropZoom) Rotate(animate bool) bool {
	if !cz.canRotate {
		return false
	}
	cz.canRotate = false
	cz.rotateGen++
	gen := cz.rotateGen
	cz.cancelGesture()

	from := geom.NormalizeAngle(cz.state.Rotation.Get())
	to := from + quarterTurn
	cz.resize(to, animate)
	cz.detector.Reset()

	if !animate {
		cz.state.Translate.Set(geom.V(0, 0))
		cz.state.Scale.Set(1)
		cz.state.Rotation.Set(geom.NormalizeAngle(to))
		cz.canRotate = true
		return true
	}

	cz.animate(&cz.state.Translate.X, 0)
	cz.animate(&cz.state.Translate.Y, 0)
	cz.animate(&cz.state.Scale, 1)
	cz.state.Rotation.Set(from)
	cz.driver.Timing(&cz.state.Rotation, to, cz.cfg.Timing, func(finished bool) {
		if gen != cz.rotateGen {
			return
		}
		cz.canRotate = true
		if finished {
			cz.state.Rotation.Set(geom.NormalizeAngle(to))
		}
	})
	return true
}

// cancelGesture drops the pan or pinch owning the transform. Samples of the
// dropped gesture are ignored until a new start.
func (cz *CropZoom) cancelGesture() {
	switch cz.arbiter.Active() {
	case gesture.KindPan:
		cz.pan.Cancel()
	case gesture.KindPinch:
		cz.pinch.Cancel()
	default:
		return
	}
	cz.arbiter.Release()
}

// FlipHorizontal mirrors the content around the vertical axis.
func (cz *CropZoom) FlipHorizontal(animate bool) {
	cz.flipH = !cz.flipH
	cz.flip(&cz.state.Rotate.Y, cz.flipH, animate)
}

// FlipVertical mirrors the content around the horizontal axis.
func (cz *CropZoom) FlipVertical(animate bool) {
	cz.flipV = !cz.flipV
	cz.flip(&cz.state.Rotate.X, cz.flipV, animate)
}

// flip drives a 3D flip angle to π or back to 0.
func (cz *CropZoom) flip(v *anim.Value, on, animate bool) {
	to := 0.0
	if on {
		to = math.Pi
	}
	if animate {
		cz.animate(v, to)
		return
	}
	v.Set(to)
}

// Reset returns the transform to identity and clears flips and rotation.
func (cz *CropZoom) Reset(animate bool) {
	cz.cancelGesture()
	cz.rotateGen++
	cz.canRotate = true
	cz.flipH, cz.flipV = false, false
	cz.resize(0, animate)
	cz.detector.Reset()

	targets := []struct {
		v  *anim.Value
		to float64
	}{
		{&cz.state.Translate.X, 0},
		{&cz.state.Translate.Y, 0},
		{&cz.state.Rotation, 0},
		{&cz.state.Rotate.X, 0},
		{&cz.state.Rotate.Y, 0},
		{&cz.state.Scale, 1},
	}
	for _, t := range targets {
		if animate {
			cz.animate(t.v, t.to)
		} else {
			t.v.Set(t.to)
		}
	}
}

// Crop resolves the visible region into source pixels. A fixedWidth > 0
// rescales the result so its width matches.
func (cz *CropZoom) Crop(fixedWidth float64) crop.Result {
	return crop.Resolve(crop.Params{
		Container:  cz.container.Get(),
		CropSize:   cz.cfg.CropSize,
		Resolution: cz.cfg.Resolution,
		Position:   cz.state.Translate.Get(),
		Scale:      cz.state.Scale.Get(),
		Context: crop.Context{
			RotationAngle:  geom.NormalizeAngle(cz.state.Rotation.Get()),
			FlipHorizontal: cz.flipH,
			FlipVertical:   cz.flipV,
		},
		FixedWidth: fixedWidth,
	})
}

// resize moves the container to the cover size for angle and swaps the
// detector on odd quarter turns.
func (cz *CropZoom) resize(angle float64, animate bool) {
	size := cz.containerSize(angle)
	if animate {
		cz.animate(&cz.container.Width, size.Width)
		cz.animate(&cz.container.Height, size.Height)
	} else {
		cz.container.Set(size)
	}
	if geom.IsQuarterTurned(angle) {
		size = size.Swap()
	}
	cz.detector.Size.Set(size)
}

// animate runs a timing animation with the widget timing.
func (cz *CropZoom) animate(v *anim.Value, to float64) {
	cz.driver.Timing(v, to, cz.cfg.Timing, nil)
}
