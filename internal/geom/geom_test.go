package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRubberBand verifies the diminishing-returns curve.
func TestRubberBand(t *testing.T) {
	assert.Equal(t, 0.0, RubberBand(-5, 10))
	assert.Equal(t, 0.0, RubberBand(5, 0))
	assert.InDelta(t, 5, RubberBand(10, 10), 1e-12)
	assert.Equal(t, 10.0, RubberBand(math.Inf(1), 10))
	assert.Less(t, RubberBand(1e9, 10), 10.0)
}

// TestResist verifies values inside the bound pass through untouched.
func TestResist(t *testing.T) {
	assert.Equal(t, 3.0, Resist(3, 5, 10))
	assert.InDelta(t, 10, Resist(15, 5, 10), 1e-12)
	assert.InDelta(t, -10, Resist(-15, 5, 10), 1e-12)
	assert.Equal(t, 0.0, Resist(math.NaN(), 5, 10))
}

// TestRotatedSize_Axis verifies the cover fit at axis-aligned angles.
func TestRotatedSize_Axis(t *testing.T) {
	s := RotatedSize(Sz(100, 100), 2, 0)
	assert.InDelta(t, 200, s.Width, 1e-9)
	assert.InDelta(t, 100, s.Height, 1e-9)

	s = RotatedSize(Sz(100, 50), 2, math.Pi/2)
	assert.InDelta(t, 200, s.Width, 1e-9)
	assert.InDelta(t, 100, s.Height, 1e-9)
}

// TestRotatedSize_CoversCropAtAnyAngle checks the crop box fits in the rotated image.
func TestRotatedSize_CoversCropAtAnyAngle(t *testing.T) {
	crop := Sz(120, 80)
	for deg := 0.0; deg < 360; deg += 7.5 {
		angle := deg * math.Pi / 180
		s := RotatedSize(crop, 1.5, angle)
		assert.InDelta(t, 1.5, s.Width/s.Height, 1e-9)

		foot := RotatedBounds(crop, angle)
		assert.LessOrEqual(t, foot.Width, s.Width+1e-9, "deg %v", deg)
		assert.LessOrEqual(t, foot.Height, s.Height+1e-9, "deg %v", deg)
	}
}

// TestFitRotated_FitsBox checks the contained size's footprint stays inside the box.
func TestFitRotated_FitsBox(t *testing.T) {
	box := Sz(300, 200)
	for deg := 0.0; deg < 180; deg += 15 {
		angle := deg * math.Pi / 180
		s := FitRotated(box, 0.75, angle)
		foot := RotatedBounds(s, angle)
		assert.LessOrEqual(t, foot.Width, box.Width+1e-9)
		assert.LessOrEqual(t, foot.Height, box.Height+1e-9)
	}
}

// TestRotatedSize_Degenerate verifies bad aspect ratios return the crop box.
func TestRotatedSize_Degenerate(t *testing.T) {
	assert.Equal(t, Sz(10, 20), RotatedSize(Sz(10, 20), 0, 1))
	assert.Equal(t, Sz(10, 20), RotatedSize(Sz(10, 20), math.NaN(), 1))
}

// TestPivotTransform_MatchesClosedForm verifies the rotation-free pivot formula.
func TestPivotTransform_MatchesClosedForm(t *testing.T) {
	offset := V(12, -7)
	origin := V(30, 40)
	ratio := 1.8
	got := PivotTransform(offset, origin, ratio, 0, V(0, 0))
	want := offset.Add(origin.Sub(offset).Mul(1 - ratio))
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

// TestTransformMatrix_RoundTrip verifies the matrix matches the component transform.
func TestTransformMatrix_RoundTrip(t *testing.T) {
	m := TransformMatrix(V(10, 20), 2, math.Pi/2, true, false)
	got := Apply(m, V(1, 0))
	// flip x -> (-1,0); rotate 90° -> (0,-1); scale -> (0,-2); translate -> (10,18)
	assert.InDelta(t, 10, got.X, 1e-9)
	assert.InDelta(t, 18, got.Y, 1e-9)
	assert.Equal(t, V(3, 4), Apply(Identity, V(3, 4)))
}

// TestFromNormalized_Clamps verifies normalized mapping clamps out-of-range values.
func TestFromNormalized_Clamps(t *testing.T) {
	assert.Equal(t, V(0, 200), FromNormalized(-1, 2, Sz(100, 200)))
	assert.Equal(t, V(50, 100), FromNormalized(0.5, 0.5, Sz(100, 200)))
}
