package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/frudas24/zoomkit/internal/geom"
)

// DefaultProfile is the profile name used when a request names none.
const DefaultProfile = "default"

// Timing configures widget animations.
type Timing struct {
	DurationMs   int    `yaml:"durationMs" json:"durationMs,omitempty"`
	Easing       string `yaml:"easing" json:"easing,omitempty"`
	ReduceMotion bool   `yaml:"reduceMotion" json:"reduceMotion,omitempty"`
}

// Resize mirrors the snap-back resize target.
type Resize struct {
	Size        geom.Size[float64] `yaml:"size" json:"size"`
	AspectRatio float64            `yaml:"aspectRatio" json:"aspectRatio"`
	Scale       float64            `yaml:"scale" json:"scale"`
}

// Profile describes one widget. Fields irrelevant to Kind are ignored.
type Profile struct {
	Kind   string `yaml:"kind" json:"kind"`
	Timing Timing `yaml:"timing" json:"timing"`

	// crop
	CropSize     geom.Size[float64] `yaml:"cropSize" json:"cropSize"`
	Resolution   geom.Size[float64] `yaml:"resolution" json:"resolution"`
	MaxScale     *float64           `yaml:"maxScale" json:"maxScale,omitempty"`
	ScaleMode    string             `yaml:"scaleMode" json:"scaleMode,omitempty"`
	PanMode      string             `yaml:"panMode" json:"panMode,omitempty"`
	PanWithPinch *bool              `yaml:"panWithPinch" json:"panWithPinch,omitempty"`
	Decay        bool               `yaml:"decay" json:"decay,omitempty"`

	// gallery
	ItemSize          geom.Size[float64]   `yaml:"itemSize" json:"itemSize"`
	Gap               float64              `yaml:"gap" json:"gap,omitempty"`
	Items             []geom.Size[float64] `yaml:"items" json:"items,omitempty"`
	InitialIndex      int                  `yaml:"initialIndex" json:"initialIndex,omitempty"`
	Threshold         float64              `yaml:"threshold" json:"threshold,omitempty"`
	VelocityThreshold float64              `yaml:"velocityThreshold" json:"velocityThreshold,omitempty"`

	// snapback
	Size   geom.Size[float64] `yaml:"size" json:"size"`
	Resize *Resize            `yaml:"resize" json:"resize,omitempty"`
}

// Profiles maps profile names to widget descriptions.
type Profiles map[string]Profile

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type profileFile struct {
	Profiles Profiles `yaml:"profiles"`
}

// LoadProfiles reads widget profiles from a YAML file. A missing file
// yields only the built-in default crop profile.
func LoadProfiles(path string) (Profiles, error) {
	out := Profiles{DefaultProfile: BuiltinProfile()}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name, p := range file.Profiles {
		if p.Kind == "" {
			return nil, fmt.Errorf("profile %q: kind is required", name)
		}
		out[name] = p
	}
	return out, nil
}

// BuiltinProfile is a square crop over an image whose resolution is filled
// in from IMAGE_PATH when present.
func BuiltinProfile() Profile {
	return Profile{
		Kind:     "crop",
		CropSize: geom.Sz(300, 300),
	}
}
