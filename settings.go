// seehuhn.de/go/dotmatrix - dot-matrix image rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dotmatrix

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/dotmatrix/tone"
)

// Background names accepted in Settings.Background, in addition to
// "#rrggbb" hex colours.
const (
	BackgroundDark        = "dark"
	BackgroundLight       = "light"
	BackgroundTransparent = "transparent"
	BackgroundAuto        = "auto"
)

// Settings control one render pass.  All slider values are in [0, 100];
// for Exposure and Contrast 50 is neutral.  Settings are plain values
// and are copied into every pass.
type Settings struct {
	// Variant selects the pipeline.  It is not part of presets.
	Variant Variant `yaml:"-" toml:"-"`

	Resolution float64 `yaml:"resolution" toml:"resolution"`
	PixelGap   float64 `yaml:"pixel_gap" toml:"pixel_gap"`
	Exposure   float64 `yaml:"exposure" toml:"exposure"`
	Contrast   float64 `yaml:"contrast" toml:"contrast"`
	LowerLimit float64 `yaml:"lower_limit" toml:"lower_limit"`

	// IsCircular frames the Glyph Mirror grid as a circle.  In the
	// other cell pipelines it selects round instead of square dots.
	IsCircular bool `yaml:"circular" toml:"circular"`

	IsMonochrome            bool `yaml:"monochrome" toml:"monochrome"`
	IsAntiAliased           bool `yaml:"anti_aliased" toml:"anti_aliased"`
	IsTransparent           bool `yaml:"transparent" toml:"transparent"`
	IsPureValue             bool `yaml:"pure_value" toml:"pure_value"`
	IsGrainEnabled          bool `yaml:"grain" toml:"grain"`
	IsMarkerEnabled         bool `yaml:"markers" toml:"markers"`
	IsBackgroundBlurEnabled bool `yaml:"background_blur" toml:"background_blur"`

	// CropOffsetX and CropOffsetY select the visible part of images
	// whose aspect ratio differs from the canvas, in [0, 1].
	CropOffsetX float64 `yaml:"crop_x" toml:"crop_x"`
	CropOffsetY float64 `yaml:"crop_y" toml:"crop_y"`

	// Glass dot parameters.
	IOR                   float64 `yaml:"ior" toml:"ior"`
	SimilaritySensitivity float64 `yaml:"similarity" toml:"similarity"`
	GrainAmount           float64 `yaml:"grain_amount" toml:"grain_amount"`
	GrainSize             float64 `yaml:"grain_size" toml:"grain_size"`
	BlurAmount            float64 `yaml:"blur" toml:"blur"`

	// GlowStrength controls the Glyph Mirror glow.
	GlowStrength float64 `yaml:"glow" toml:"glow"`

	// PaletteSize reduces the dot colours of the wallpaper pipelines to
	// this many colours.  0 disables the reduction.
	PaletteSize int `yaml:"palette_size" toml:"palette_size"`

	// Background is "dark", "light", "transparent", "auto" or a hex
	// colour.
	Background string `yaml:"background" toml:"background"`

	// EasterEgg replaces the background by coloured bands.  0 is off.
	EasterEgg int `yaml:"easter_egg" toml:"easter_egg"`

	// CMYK sends all colours through the print simulation.
	CMYK bool `yaml:"cmyk" toml:"cmyk"`

	// Seed makes the grain pattern reproducible.
	Seed uint64 `yaml:"seed" toml:"seed"`
}

// DefaultSettings returns the initial settings of a pipeline.
func DefaultSettings(v Variant) Settings {
	s := Settings{
		Variant:               v,
		Resolution:            50,
		PixelGap:              20,
		Exposure:              50,
		Contrast:              50,
		IsCircular:            true,
		IsAntiAliased:         true,
		CropOffsetX:           0.5,
		CropOffsetY:           0.5,
		IOR:                   50,
		SimilaritySensitivity: 40,
		GrainAmount:           30,
		GrainSize:             20,
		BlurAmount:            30,
		GlowStrength:          40,
		Background:            BackgroundDark,
		Seed:                  1,
	}
	switch v {
	case GlyphMirror:
		s.IsMonochrome = true
		s.LowerLimit = 10
	case PhotoWidget:
		s.PixelGap = 10
	case ValueAliasing:
		s.IsMonochrome = true
		s.PixelGap = 0
	case GlassDots:
		s.PixelGap = 30
		s.IsMarkerEnabled = true
		s.IsGrainEnabled = true
	}
	return s
}

// Clamped returns a copy of s with every numeric field moved into its
// valid range.  NaN values become the lower bound.
func (s Settings) Clamped() Settings {
	for _, p := range []*float64{
		&s.Resolution, &s.PixelGap, &s.Exposure, &s.Contrast, &s.LowerLimit,
		&s.IOR, &s.SimilaritySensitivity, &s.GrainAmount, &s.GrainSize,
		&s.BlurAmount, &s.GlowStrength,
	} {
		*p = tone.Clamp(*p)
	}
	s.CropOffsetX = unit(s.CropOffsetX)
	s.CropOffsetY = unit(s.CropOffsetY)
	s.PaletteSize = max(s.PaletteSize, 0)
	s.EasterEgg = max(s.EasterEgg, 0)
	s.Background = strings.ToLower(strings.TrimSpace(s.Background))
	if s.Background == "" {
		s.Background = BackgroundDark
	}
	return s
}

// Levels returns the exposure/contrast adjustment of s.
func (s Settings) Levels() tone.Levels {
	return tone.Levels{Exposure: s.Exposure, Contrast: s.Contrast}
}

// LoadPreset reads settings from a YAML or TOML file, chosen by the file
// extension.  Fields missing from the file keep their values from base.
func LoadPreset(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	s := base
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".toml":
		err = toml.Unmarshal(data, &s)
	default:
		return base, fmt.Errorf("%s: unsupported preset format %q", path, ext)
	}
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	s.Variant = base.Variant
	return s, nil
}

// SavePreset writes s as YAML.
func SavePreset(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
