package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/zoomkit/internal/config"
	"github.com/frudas24/zoomkit/internal/geom"
)

// TestFromProfile_Kinds verifies each widget kind builds.
func TestFromProfile_Kinds(t *testing.T) {
	four := 4.0
	crop, err := FromProfile(config.Profile{
		Kind:       "crop",
		CropSize:   geom.Sz(100, 100),
		Resolution: geom.Sz(400, 200),
		MaxScale:   &four,
		ScaleMode:  "clamp",
		PanMode:    "horizontal",
	})
	require.NoError(t, err)
	assert.Equal(t, KindCrop, crop.Kind())
	assert.Equal(t, 4.0, crop.State().Crop.MaxScale)

	gal, err := FromProfile(config.Profile{
		Kind:     "gallery",
		ItemSize: geom.Sz(100, 100),
		Items:    []geom.Size[float64]{geom.Sz(10, 10)},
	})
	require.NoError(t, err)
	assert.Equal(t, KindGallery, gal.Kind())

	sb, err := FromProfile(config.Profile{
		Kind:   "snapback",
		Resize: &config.Resize{Size: geom.Sz(50, 50), AspectRatio: 2, Scale: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, sb.State().SnapBack.ResizedWidth)
}

// TestFromProfile_Errors verifies bad profiles are rejected.
func TestFromProfile_Errors(t *testing.T) {
	_, err := FromProfile(config.Profile{Kind: "carousel"})
	assert.Error(t, err)
	_, err = FromProfile(config.Profile{Kind: "crop", CropSize: geom.Sz(1, 1), Resolution: geom.Sz(1, 1), PanMode: "diagonal"})
	assert.Error(t, err)
	_, err = FromProfile(config.BuiltinProfile())
	assert.ErrorContains(t, err, "resolution must be positive")
}

// TestTimingOf verifies profile timing conversion.
func TestTimingOf(t *testing.T) {
	tc := timingOf(config.Timing{DurationMs: 120, Easing: "linear"})
	assert.Equal(t, 120*time.Millisecond, tc.Duration)
	assert.InDelta(t, 0.25, tc.Easing(0.25), 1e-12)
	assert.Nil(t, timingOf(config.Timing{}).Easing)
}
