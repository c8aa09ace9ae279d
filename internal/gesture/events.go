package gesture

import (
	"fmt"
	"math"
	"strings"

	"github.com/frudas24/zoomkit/internal/geom"
)

const halfPi = math.Pi / 2

// PanEvent is one decoded pan sample.
type PanEvent struct {
	// Translation is the accumulated drag since the gesture started.
	Translation geom.Vec
	// Velocity is in units per second; only meaningful on end.
	Velocity geom.Vec
}

// PinchEvent is one decoded pinch sample.
type PinchEvent struct {
	// Focal is the midpoint of the touches in detector-local coordinates.
	Focal geom.Vec
	// Scale is the factor since the gesture started.
	Scale float64
	// Rotation is the angle since the gesture started, in radians.
	Rotation float64
}

// valid reports whether the sample can be applied without corrupting state.
func (e PinchEvent) valid() bool {
	return geom.Finite(e.Focal) && e.Scale > 0 && !math.IsInf(e.Scale, 0) && !math.IsNaN(e.Rotation) && !math.IsInf(e.Rotation, 0)
}

// PanMode governs the axis freedom of a pan.
type PanMode int

const (
	// PanFree moves both axes with elastic overshoot past the bounds.
	PanFree PanMode = iota
	// PanHorizontal moves only the x axis.
	PanHorizontal
	// PanVertical moves only the y axis.
	PanVertical
	// PanClamp hard-clamps both axes on every sample.
	PanClamp
)

// ScaleMode governs how a pinch treats the scale range.
type ScaleMode int

const (
	// ScaleBounce lets the scale overshoot elastically and snap back.
	ScaleBounce ScaleMode = iota
	// ScaleClamp keeps the scale inside the range at all times.
	ScaleClamp
)

// ParsePanMode parses a config name.
func ParsePanMode(name string) (PanMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "free":
		return PanFree, nil
	case "horizontal":
		return PanHorizontal, nil
	case "vertical":
		return PanVertical, nil
	case "clamp":
		return PanClamp, nil
	default:
		return PanFree, fmt.Errorf("unknown pan mode %q", name)
	}
}

// ParseScaleMode parses a config name.
func ParseScaleMode(name string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bounce":
		return ScaleBounce, nil
	case "clamp":
		return ScaleClamp, nil
	default:
		return ScaleBounce, fmt.Errorf("unknown scale mode %q", name)
	}
}
