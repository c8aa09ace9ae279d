package imgcrop

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/zoomkit/internal/crop"
	"github.com/frudas24/zoomkit/internal/geom"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// quad returns a 4x2 image whose left half is red/green (top/bottom) and right half blue/white.
func quad() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			switch {
			case x < 2 && y == 0:
				img.SetNRGBA(x, y, red)
			case x < 2:
				img.SetNRGBA(x, y, green)
			case y == 0:
				img.SetNRGBA(x, y, blue)
			default:
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return img
}

func result(x, y, w, h float64) crop.Result {
	return crop.Result{OriginX: x, OriginY: y, Width: w, Height: h, Output: geom.Sz(w, h), Factor: 1}
}

// TestApply_Plain verifies a straight crop keeps pixels.
func TestApply_Plain(t *testing.T) {
	out, err := Apply(quad(), result(1, 0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, red, out.NRGBAAt(0, 0))
	assert.Equal(t, blue, out.NRGBAAt(1, 0))
	assert.Equal(t, white, out.NRGBAAt(1, 1))
}

// TestApply_Flip verifies flips mirror the cropped region.
func TestApply_Flip(t *testing.T) {
	r := result(0, 0, 4, 2)
	r.Context.FlipHorizontal = true
	out, err := Apply(quad(), r)
	require.NoError(t, err)
	assert.Equal(t, blue, out.NRGBAAt(0, 0))
	assert.Equal(t, red, out.NRGBAAt(3, 0))

	r = result(0, 0, 4, 2)
	r.Context.FlipVertical = true
	out, err = Apply(quad(), r)
	require.NoError(t, err)
	assert.Equal(t, green, out.NRGBAAt(0, 0))
	assert.Equal(t, white, out.NRGBAAt(3, 0))
}

// TestApply_QuarterTurnClockwise verifies a positive quarter turn rotates clockwise.
func TestApply_QuarterTurnClockwise(t *testing.T) {
	r := result(0, 0, 4, 2)
	r.Context.RotationAngle = math.Pi / 2
	r.Output = geom.Sz(2, 4)
	out, err := Apply(quad(), r)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 4), out.Bounds())
	// Clockwise: the bottom-left pixel moves to the top-left.
	assert.Equal(t, green, out.NRGBAAt(0, 0))
	assert.Equal(t, red, out.NRGBAAt(1, 0))
	assert.Equal(t, white, out.NRGBAAt(0, 3))
	assert.Equal(t, blue, out.NRGBAAt(1, 3))
}

// TestApply_HalfTurn verifies a half turn.
func TestApply_HalfTurn(t *testing.T) {
	r := result(0, 0, 4, 2)
	r.Context.RotationAngle = -math.Pi
	out, err := Apply(quad(), r)
	require.NoError(t, err)
	assert.Equal(t, white, out.NRGBAAt(0, 0))
	assert.Equal(t, red, out.NRGBAAt(3, 1))
}

// TestApply_FreeAngleTrimsToOutput verifies non-quarter angles are trimmed to the output box.
func TestApply_FreeAngleTrimsToOutput(t *testing.T) {
	src := imaging.New(40, 40, red)
	r := result(0, 0, 40, 40)
	r.Context.RotationAngle = math.Pi / 4
	r.Output = geom.Sz(28, 28)
	out, err := Apply(src, r)
	require.NoError(t, err)
	assert.Equal(t, 28, out.Bounds().Dx())
	assert.Equal(t, 28, out.Bounds().Dy())
	assert.Equal(t, uint8(255), out.NRGBAAt(14, 14).A)
}

// TestApply_FixedWidth verifies the rescale factor resizes the output.
func TestApply_FixedWidth(t *testing.T) {
	src := imaging.New(40, 20, blue)
	r := crop.Result{Width: 20, Height: 10, Output: geom.Sz(20, 10), Factor: 0.5}
	out, err := Apply(src, r)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
}

// TestApply_Outside verifies a region off the image is rejected.
func TestApply_Outside(t *testing.T) {
	_, err := Apply(quad(), result(10, 10, 2, 2))
	require.ErrorIs(t, err, ErrEmptyCrop)
}

// TestViewport_ScaledDown verifies the live transform is rendered into the crop box.
func TestViewport_ScaledDown(t *testing.T) {
	src := imaging.New(100, 100, red)
	size := geom.Sz(100, 100)
	m := geom.TransformMatrix(geom.V(0, 0), 0.5, 0, false, false)
	out := Viewport(src, m, size, size)
	assert.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())
	assert.Equal(t, red, out.NRGBAAt(50, 50))
	assert.Equal(t, uint8(0), out.NRGBAAt(5, 5).A)
}

// TestOpen_RoundTrip verifies decoding a saved image and its size.
func TestOpen_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, imaging.Save(quad(), path))
	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(4, 2), SizeOf(img))

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
