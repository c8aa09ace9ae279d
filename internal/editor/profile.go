package editor

import (
	"fmt"
	"time"

	"github.com/frudas24/zoomkit/internal/anim"
	"github.com/frudas24/zoomkit/internal/config"
	"github.com/frudas24/zoomkit/internal/cropzoom"
	"github.com/frudas24/zoomkit/internal/gallery"
	"github.com/frudas24/zoomkit/internal/geom"
	"github.com/frudas24/zoomkit/internal/gesture"
	"github.com/frudas24/zoomkit/internal/snapback"
)

// FromProfile builds an editor for a configured widget.
func FromProfile(p config.Profile) (*Editor, error) {
	timing := timingOf(p.Timing)
	switch Kind(p.Kind) {
	case KindCrop:
		cfg, err := cropConfig(p, timing)
		if err != nil {
			return nil, err
		}
		return NewCrop(cfg)
	case KindGallery:
		scaleMode, err := gesture.ParseScaleMode(p.ScaleMode)
		if err != nil {
			return nil, err
		}
		cfg := gallery.DefaultConfig(p.ItemSize, p.Items)
		cfg.Gap = p.Gap
		cfg.InitialIndex = p.InitialIndex
		if p.Threshold > 0 {
			cfg.Threshold = p.Threshold
		}
		if p.VelocityThreshold > 0 {
			cfg.VelocityThreshold = p.VelocityThreshold
		}
		cfg.MaxScale = maxScaleOf(p.MaxScale)
		cfg.ScaleMode = scaleMode
		if p.PanWithPinch != nil {
			cfg.PanWithPinch = *p.PanWithPinch
		}
		cfg.Timing = timing
		return NewGallery(cfg)
	case KindSnapBack:
		cfg := snapback.Config{Size: p.Size, Timing: timing}
		if p.Resize != nil {
			cfg.Resize = &snapback.ResizeConfig{
				Size:        p.Resize.Size,
				AspectRatio: p.Resize.AspectRatio,
				Scale:       p.Resize.Scale,
			}
		}
		return NewSnapBack(cfg)
	default:
		return nil, fmt.Errorf("unknown widget kind %q", p.Kind)
	}
}

// cropConfig maps a profile onto crop widget options.
func cropConfig(p config.Profile, timing anim.TimingConfig) (cropzoom.Config, error) {
	scaleMode, err := gesture.ParseScaleMode(p.ScaleMode)
	if err != nil {
		return cropzoom.Config{}, err
	}
	panMode, err := gesture.ParsePanMode(p.PanMode)
	if err != nil {
		return cropzoom.Config{}, err
	}
	cfg := cropzoom.DefaultConfig(p.CropSize, p.Resolution)
	cfg.MaxScale = maxScaleOf(p.MaxScale)
	cfg.ScaleMode = scaleMode
	cfg.PanMode = panMode
	if p.PanWithPinch != nil {
		cfg.PanWithPinch = *p.PanWithPinch
	}
	cfg.Decay = p.Decay
	cfg.Timing = timing
	return cfg, nil
}

// maxScaleOf returns the explicit limit or the auto sentinel.
func maxScaleOf(v *float64) float64 {
	if v == nil {
		return geom.AutoMaxScale
	}
	return *v
}

// timingOf converts profile timing to animation timing.
func timingOf(t config.Timing) anim.TimingConfig {
	out := anim.TimingConfig{ReduceMotion: t.ReduceMotion}
	if t.DurationMs > 0 {
		out.Duration = time.Duration(t.DurationMs) * time.Millisecond
	}
	if t.Easing != "" {
		out.Easing = anim.EasingByName(t.Easing)
	}
	return out
}
