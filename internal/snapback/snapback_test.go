package snapback

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
)

const frame = 16 * time.Millisecond

// TestPinch_AnchorsRotatedFocal verifies the focal point stays under the fingers.
func TestPinch_AnchorsRotatedFocal(t *testing.T) {
	s := New(Config{Size: geom.Sz(200, 100)}, anim.NewTimeline())
	focal := geom.V(150, 20)
	s.PinchStart(gesture.PinchEvent{Focal: focal, Scale: 1})
	s.PinchUpdate(gesture.PinchEvent{Focal: focal, Scale: 2.5, Rotation: 0.7})

	snap := s.Snapshot()
	// content point under the focal origin, mapped back to the screen
	origin := focal.Sub(geom.V(100, 50))
	screen := geom.Apply(snap.Matrix(), origin)
	assert.InDelta(t, origin.X, screen.X, 1e-9)
	assert.InDelta(t, origin.Y, screen.Y, 1e-9)
}

// TestPinch_FollowsFocalDrift verifies the two-finger pan.
func TestPinch_FollowsFocalDrift(t *testing.T) {
	s := New(Config{Size: geom.Sz(100, 100)}, nil)
	s.PinchStart(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 1})
	s.PinchUpdate(gesture.PinchEvent{Focal: geom.V(70, 40), Scale: 1})
	assert.InDelta(t, 20, s.State().Translate.X.Get(), 1e-9)
	assert.InDelta(t, -10, s.State().Translate.Y.Get(), 1e-9)
}

// TestPinch_ResistsBelowOne verifies pinching in is damped.
func TestPinch_ResistsBelowOne(t *testing.T) {
	s := New(Config{Size: geom.Sz(100, 100)}, nil)
	s.PinchStart(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 1})
	s.PinchUpdate(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 0.2})
	got := s.State().Scale.Get()
	assert.Less(t, got, 1.0)
	assert.Greater(t, got, 0.5)

	s.PinchUpdate(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: math.NaN()})
	assert.Equal(t, got, s.State().Scale.Get())
}

// TestPinchEnd_SnapsBackAndNotifiesOnce verifies the end callback fires after settle.
func TestPinchEnd_SnapsBackAndNotifiesOnce(t *testing.T) {
	tl := anim.NewTimeline()
	s := New(Config{Size: geom.Sz(100, 100)}, tl)
	calls := 0
	s.OnGestureEnd(func() { calls++ })

	s.PinchStart(gesture.PinchEvent{Focal: geom.V(10, 10), Scale: 1})
	s.PinchUpdate(gesture.PinchEvent{Focal: geom.V(30, 10), Scale: 3, Rotation: 1})
	s.PinchEnd()
	s.PinchEnd()
	assert.Equal(t, 0, calls)

	tl.Settle(frame, 100)
	assert.Equal(t, 1, calls)
	assert.Equal(t, gesture.Snapshot{Scale: 1}, s.Snapshot().Snapshot)
}

// TestPinchStart_CancelsPendingNotify verifies a new pinch suppresses the old callback.
func TestPinchStart_CancelsPendingNotify(t *testing.T) {
	tl := anim.NewTimeline()
	s := New(Config{Size: geom.Sz(100, 100)}, tl)
	calls := 0
	s.OnGestureEnd(func() { calls++ })

	s.PinchStart(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 1})
	s.PinchUpdate(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 2})
	s.PinchEnd()
	tl.Tick(frame)

	s.PinchStart(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 1})
	tl.Settle(frame, 100)
	assert.Equal(t, 0, calls)
	require.True(t, s.Active())

	s.PinchEnd()
	tl.Settle(frame, 100)
	assert.Equal(t, 1, calls)
}

// TestResizeConfig_Interpolates verifies the element grows to the image aspect.
func TestResizeConfig_Interpolates(t *testing.T) {
	c := ResizeConfig{Size: geom.Sz(100, 100), AspectRatio: 2, Scale: 3}
	assert.Equal(t, geom.Sz(100, 100), c.Resized(1))
	assert.Equal(t, geom.Sz(100, 100), c.Resized(0.5))

	mid := c.Resized(2)
	assert.InDelta(t, 150, mid.Width, 1e-9)
	assert.InDelta(t, 100, mid.Height, 1e-9)

	end := c.Resized(10)
	assert.InDelta(t, 200, end.Width, 1e-9)
	assert.InDelta(t, 100, end.Height, 1e-9)

	assert.Equal(t, geom.Sz(100, 100), ResizeConfig{Size: geom.Sz(100, 100)}.Resized(2))
}

// TestSnapshot_Footprint verifies the rotated footprint follows scale and rotation.
func TestSnapshot_Footprint(t *testing.T) {
	resize := ResizeConfig{Size: geom.Sz(100, 100), AspectRatio: 2, Scale: 2}
	s := New(Config{Resize: &resize}, nil)
	s.PinchStart(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 1})
	s.PinchUpdate(gesture.PinchEvent{Focal: geom.V(50, 50), Scale: 2, Rotation: math.Pi / 2})

	snap := s.Snapshot()
	assert.InDelta(t, 200, snap.ResizedWidth, 1e-9)
	assert.InDelta(t, 100, snap.ResizedHeight, 1e-9)
	assert.InDelta(t, 200, snap.Footprint.Width, 1e-9)
	assert.InDelta(t, 400, snap.Footprint.Height, 1e-9)
}
