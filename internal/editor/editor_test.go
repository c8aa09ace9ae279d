package editor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/zoomkit/internal/cropzoom"
	"github.com/frudas24/zoomkit/internal/gallery"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/snapback"
)

const frame = 16 * time.Millisecond

// newCropEditor returns a crop editor over a 400x200 image.
func newCropEditor(t *testing.T) *Editor {
	t.Helper()
	e, err := NewCrop(cropzoom.DefaultConfig(geom.Sz(100, 100), geom.Sz(400, 200)))
	require.NoError(t, err)
	return e
}

// settle ticks e until its animations finish.
func settle(e *Editor) {
	for i := 0; i < 100 && e.Animating(); i++ {
		e.Tick(frame)
	}
}

// TestHandle_PinchThenCrop verifies commands flow into the widget and crop.
func TestHandle_PinchThenCrop(t *testing.T) {
	e := newCropEditor(t)
	require.NoError(t, e.Handle(Command{T: CmdPinchStart, X: 0.5, Y: 0.5, Norm: true}))
	require.NoError(t, e.Handle(Command{T: CmdPinchUpdate, X: 0.5, Y: 0.5, Norm: true, Scale: 2}))
	require.NoError(t, e.Handle(Command{T: CmdPinchEnd}))
	settle(e)

	st := e.State()
	require.NotNil(t, st.Crop)
	assert.Equal(t, 2.0, st.Crop.Scale)
	assert.Equal(t, KindCrop, st.Kind)

	r, err := e.Crop(0)
	require.NoError(t, err)
	assert.InDelta(t, 150, r.OriginX, 1e-9)
	assert.InDelta(t, 50, r.OriginY, 1e-9)
	assert.InDelta(t, 100, r.Width, 1e-9)
}

// TestHandle_UnknownAndUnsupported verifies sentinel errors.
func TestHandle_UnknownAndUnsupported(t *testing.T) {
	e := newCropEditor(t)
	before := e.Version()
	assert.ErrorIs(t, e.Handle(Command{T: "explode"}), ErrUnknownCommand)
	assert.ErrorIs(t, e.Handle(Command{T: CmdSetIndex}), ErrUnsupported)
	assert.Equal(t, before, e.Version())

	s, err := NewSnapBack(snapback.Config{Size: geom.Sz(100, 100)})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Handle(Command{T: CmdRotate}), ErrUnsupported)
	_, err = s.Crop(0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

// TestHandle_RotateAnimatesOnTick verifies animations advance only on Tick.
func TestHandle_RotateAnimatesOnTick(t *testing.T) {
	e := newCropEditor(t)
	require.NoError(t, e.Handle(Command{T: CmdRotate}))
	assert.True(t, e.Animating())
	assert.Equal(t, 0.0, e.State().Crop.Rotation)

	v := e.Version()
	assert.True(t, e.Tick(frame))
	assert.Greater(t, e.Version(), v)
	settle(e)
	assert.False(t, e.Tick(frame))

	r, err := e.Crop(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5707963267948966, r.Context.RotationAngle, 1e-12)
}

// TestHandle_AnimateFalse verifies the flag applies immediately.
func TestHandle_AnimateFalse(t *testing.T) {
	e := newCropEditor(t)
	off := false
	require.NoError(t, e.Handle(Command{T: CmdFlipH, Animate: &off}))
	assert.False(t, e.Animating())
	assert.True(t, e.State().Crop.FlipHorizontal)
}

// TestGallery_SetIndex verifies gallery commands.
func TestGallery_SetIndex(t *testing.T) {
	e, err := NewGallery(gallery.Config{
		ItemSize: geom.Sz(100, 100),
		Items:    []geom.Size[float64]{geom.Sz(100, 100), geom.Sz(100, 100)},
	})
	require.NoError(t, err)
	require.NoError(t, e.Handle(Command{T: CmdSetIndex, Index: 1}))
	assert.Equal(t, 0, e.State().Gallery.Index)
	settle(e)
	assert.Equal(t, 1, e.State().Gallery.Index)
	assert.ErrorIs(t, e.Handle(Command{T: CmdFlipV}), ErrUnsupported)
}

// TestGallery_NormalizedPinchUsesViewport verifies a centered normalized
// pinch anchors on the viewport center of a letterboxed item.
func TestGallery_NormalizedPinchUsesViewport(t *testing.T) {
	e, err := NewGallery(gallery.DefaultConfig(geom.Sz(100, 100), []geom.Size[float64]{geom.Sz(400, 200)}))
	require.NoError(t, err)
	require.NoError(t, e.Handle(Command{T: CmdPinchStart, X: 0.5, Y: 0.5, Norm: true}))
	require.NoError(t, e.Handle(Command{T: CmdPinchUpdate, X: 0.5, Y: 0.5, Norm: true, Scale: 2}))

	item := e.State().Gallery.Item
	assert.InDelta(t, 2, item.Scale, 1e-9)
	assert.InDelta(t, 0, item.TranslateX, 1e-9)
	assert.InDelta(t, 0, item.TranslateY, 1e-9)
}

// TestSnapBack_SettledCount verifies the gesture end callback is surfaced.
func TestSnapBack_SettledCount(t *testing.T) {
	e, err := NewSnapBack(snapback.Config{Size: geom.Sz(100, 100)})
	require.NoError(t, err)
	require.NoError(t, e.Handle(Command{T: CmdPinchStart, X: 50, Y: 50}))
	require.NoError(t, e.Handle(Command{T: CmdPinchUpdate, X: 60, Y: 50, Scale: 2}))
	require.NoError(t, e.Handle(Command{T: CmdPinchEnd}))
	settle(e)
	st := e.State()
	assert.Equal(t, 1, st.Settled)
	assert.Equal(t, 1.0, st.SnapBack.Scale)

	_, err = NewSnapBack(snapback.Config{})
	assert.Error(t, err)
}

// TestReduceMotion verifies reduce motion editors never animate.
func TestReduceMotion(t *testing.T) {
	cfg := cropzoom.DefaultConfig(geom.Sz(100, 100), geom.Sz(400, 200))
	cfg.Timing.ReduceMotion = true
	e, err := NewCrop(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Handle(Command{T: CmdRotate}))
	assert.False(t, e.Animating())
	assert.InDelta(t, 1.5707963267948966, e.State().Crop.Rotation, 1e-12)
}

// TestCommand_DecodesWireNames verifies the JSON envelope.
func TestCommand_DecodesWireNames(t *testing.T) {
	var cmd Command
	require.NoError(t, json.Unmarshal([]byte(`{"t":"panEnd","x":3,"vx":-200,"animate":false}`), &cmd))
	assert.Equal(t, CmdPanEnd, cmd.T)
	assert.Equal(t, -200.0, cmd.VX)
	assert.False(t, cmd.animate())
	assert.False(t, cmd.IsUpdate())
	assert.True(t, Command{T: CmdPinchUpdate}.IsUpdate())
}

// TestNewEditor_UniqueIDs verifies ids are distinct.
func TestNewEditor_UniqueIDs(t *testing.T) {
	a := newCropEditor(t)
	b := newCropEditor(t)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Len(t, a.ID(), 36)
}

// TestCropConfig verifies only crop editors expose crop options.
func TestCropConfig(t *testing.T) {
	e := newCropEditor(t)
	cfg, ok := e.CropConfig()
	require.True(t, ok)
	assert.Equal(t, geom.Sz(400, 200), cfg.Resolution)

	s, err := NewSnapBack(snapback.Config{Size: geom.Sz(10, 10)})
	require.NoError(t, err)
	_, ok = s.CropConfig()
	assert.False(t, ok)
}
