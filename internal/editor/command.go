package editor

import (
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
)

// Command names accepted by Handle.
const (
	CmdPanStart    = "panStart"
	CmdPanChange   = "panChange"
	CmdPanEnd      = "panEnd"
	CmdPinchStart  = "pinchStart"
	CmdPinchUpdate = "pinchUpdate"
	CmdPinchEnd    = "pinchEnd"
	CmdRotate      = "rotate"
	CmdFlipH       = "flipHorizontal"
	CmdFlipV       = "flipVertical"
	CmdReset       = "reset"
	CmdSetIndex    = "setIndex"
)

// Command is one decoded gesture sample or imperative call.
type Command struct {
	T string `json:"t"`
	// X, Y carry the accumulated pan translation or the pinch focal point.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	// VX, VY carry the release velocity in units per second.
	VX       float64 `json:"vx,omitempty"`
	VY       float64 `json:"vy,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	// Norm marks X, Y as normalized [0..1] coordinates of the hit region.
	Norm    bool  `json:"norm,omitempty"`
	Animate *bool `json:"animate,omitempty"`
	Index   int   `json:"index,omitempty"`
}

// IsUpdate reports whether the command is a mid-gesture sample that a
// newer sample of the same kind supersedes.
func (c Command) IsUpdate() bool {
	return c.T == CmdPanChange || c.T == CmdPinchUpdate
}

// animate returns the requested animation flag, defaulting to true.
func (c Command) animate() bool {
	return c.Animate == nil || *c.Animate
}

// point returns X, Y mapped into region units when normalized.
func (c Command) point(region geom.Size[float64]) geom.Vec {
	if c.Norm {
		return geom.FromNormalized(c.X, c.Y, region)
	}
	return geom.V(c.X, c.Y)
}

// panEvent decodes a pan sample.
func (c Command) panEvent(region geom.Size[float64]) gesture.PanEvent {
	return gesture.PanEvent{Translation: c.point(region), Velocity: geom.V(c.VX, c.VY)}
}

// pinchEvent decodes a pinch sample; a missing scale means no change.
func (c Command) pinchEvent(region geom.Size[float64]) gesture.PinchEvent {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	return gesture.PinchEvent{Focal: c.point(region), Scale: scale, Rotation: c.Rotation}
}
