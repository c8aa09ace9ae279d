package cropzoom

import (
	"fmt"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
)

// Config describes one crop widget.
type Config struct {
	CropSize   geom.Size[float64]
	Resolution geom.Size[float64]
	// MaxScale overrides the derived limit when >= 0; geom.AutoMaxScale derives it.
	MaxScale     float64
	ScaleMode    gesture.ScaleMode
	PanMode      gesture.PanMode
	PanWithPinch bool
	Decay        bool
	Timing       anim.TimingConfig
}

// DefaultConfig returns the widget defaults for a crop box and image.
func DefaultConfig(cropSize, resolution geom.Size[float64]) Config {
	return Config{
		CropSize:     cropSize,
		Resolution:   resolution,
		MaxScale:     geom.AutoMaxScale,
		ScaleMode:    gesture.ScaleBounce,
		PanMode:      gesture.PanFree,
		PanWithPinch: true,
	}
}

// Validate checks the required sizes.
func (c Config) Validate() error {
	if !geom.Valid(c.CropSize) {
		return fmt.Errorf("crop size must be positive, got %vx%v", c.CropSize.Width, c.CropSize.Height)
	}
	if !geom.Valid(c.Resolution) {
		return fmt.Errorf("resolution must be positive, got %vx%v", c.Resolution.Width, c.Resolution.Height)
	}
	return nil
}
