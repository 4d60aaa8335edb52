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


package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"seehuhn.de/go/dotmatrix"
)

// Render is the render command.
type Render struct {
	Input  string `arg:"" type:"existingfile" help:"Image to render (PNG, JPEG, GIF, BMP, WebP or SVG)."`
	Output string `short:"o" required:"" type:"path" help:"PNG file to write."`

	Variant string `default:"wallpaper" enum:"glyph-mirror,wallpaper,photo-widget,value-aliasing,glass-dots" help:"Render variant (${enum})."`
	Target  string `default:"phone" help:"Output size: a preset name or WxH in pixels."`
	Preset  string `type:"existingfile" help:"YAML or TOML file with settings; flags override it."`

	SavePreset string `type:"path" help:"Write the effective settings to this YAML file."`

	Settings SettingFlags `embed:"" group:"Settings"`
}

// SettingFlags has one flag per setting.  Unset flags are nil and leave
// the variant default or the preset value alone.
type SettingFlags struct {
	Resolution *float64 `help:"Grid resolution, 0-100."`
	PixelGap   *float64 `help:"Gap between dots, 0-100."`
	Exposure   *float64 `help:"Exposure, 0-100, 50 is neutral."`
	Contrast   *float64 `help:"Contrast, 0-100, 50 is neutral."`
	LowerLimit *float64 `help:"Hide dots below this relative size, 0-100."`

	Circular       *bool `help:"Circular glyph framing, or round dots."`
	Monochrome     *bool `help:"Draw all dots in one colour."`
	AntiAliased    *bool `help:"Anti-alias dot edges."`
	Transparent    *bool `help:"Leave the background transparent."`
	PureValue      *bool `help:"Value variant: full-size grey dots."`
	Grain          *bool `help:"Glass variant: film grain."`
	Markers        *bool `help:"Glass variant: plus markers on the largest dots."`
	BackgroundBlur *bool `help:"Glass variant: blurred image behind the dots."`

	CropX *float64 `help:"Horizontal crop position, 0-1."`
	CropY *float64 `help:"Vertical crop position, 0-1."`

	IOR         *float64 `name:"ior" help:"Glass variant: refraction strength, 0-100."`
	Similarity  *float64 `help:"Glass variant: colour similarity for merging, 0-100."`
	GrainAmount *float64 `help:"Glass variant: grain strength, 0-100."`
	GrainSize   *float64 `help:"Glass variant: grain size, 0-100."`
	Blur        *float64 `help:"Glass variant: blur amount, 0-100."`
	Glow        *float64 `help:"Glyph variant: glow strength, 0-100."`

	PaletteSize *int    `help:"Reduce the dot colours to this many, 0 is off."`
	Background  *string `help:"dark, light, transparent, auto or #rrggbb."`
	EasterEgg   *int    `help:"Coloured background bands, 0 is off."`
	CMYK        *bool   `name:"cmyk" help:"Simulate print colours (default: on for print targets)."`
	Seed        *uint64 `help:"Seed of the grain pattern."`
}

// Apply copies the set flags into s.
func (f *SettingFlags) Apply(s *dotmatrix.Settings) {
	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}

	setFloat(&s.Resolution, f.Resolution)
	setFloat(&s.PixelGap, f.PixelGap)
	setFloat(&s.Exposure, f.Exposure)
	setFloat(&s.Contrast, f.Contrast)
	setFloat(&s.LowerLimit, f.LowerLimit)

	setBool(&s.IsCircular, f.Circular)
	setBool(&s.IsMonochrome, f.Monochrome)
	setBool(&s.IsAntiAliased, f.AntiAliased)
	setBool(&s.IsTransparent, f.Transparent)
	setBool(&s.IsPureValue, f.PureValue)
	setBool(&s.IsGrainEnabled, f.Grain)
	setBool(&s.IsMarkerEnabled, f.Markers)
	setBool(&s.IsBackgroundBlurEnabled, f.BackgroundBlur)

	setFloat(&s.CropOffsetX, f.CropX)
	setFloat(&s.CropOffsetY, f.CropY)

	setFloat(&s.IOR, f.IOR)
	setFloat(&s.SimilaritySensitivity, f.Similarity)
	setFloat(&s.GrainAmount, f.GrainAmount)
	setFloat(&s.GrainSize, f.GrainSize)
	setFloat(&s.BlurAmount, f.Blur)
	setFloat(&s.GlowStrength, f.Glow)

	setInt(&s.PaletteSize, f.PaletteSize)
	setInt(&s.EasterEgg, f.EasterEgg)
	if f.Background != nil {
		s.Background = *f.Background
	}
	setBool(&s.CMYK, f.CMYK)
	if f.Seed != nil {
		s.Seed = *f.Seed
	}
}

// settings assembles the settings of the pass: variant defaults, then
// the target's colour model, then the preset, then the flags.
func (c *Render) settings() (dotmatrix.Settings, dotmatrix.Target, error) {
	v, err := dotmatrix.ParseVariant(c.Variant)
	if err != nil {
		return dotmatrix.Settings{}, dotmatrix.Target{}, err
	}
	tgt, err := dotmatrix.ParseTarget(c.Target)
	if err != nil {
		return dotmatrix.Settings{}, dotmatrix.Target{}, err
	}

	s := dotmatrix.DefaultSettings(v)
	s.CMYK = tgt.Print
	if c.Preset != "" {
		s, err = dotmatrix.LoadPreset(c.Preset, s)
		if err != nil {
			return dotmatrix.Settings{}, dotmatrix.Target{}, err
		}
	}
	c.Settings.Apply(&s)
	return s.Clamped(), tgt, nil
}

// Run is called by kong when the render command is executed.
func (c *Render) Run(logger *slog.Logger) error {
	s, tgt, err := c.settings()
	if err != nil {
		return err
	}

	src, err := loadImage(c.Input, tgt.Size())
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}
	logger.Debug("loaded image", "file", c.Input, "size", src.Bounds().Size())

	if c.SavePreset != "" {
		if err := dotmatrix.SavePreset(c.SavePreset, s); err != nil {
			return err
		}
		logger.Info("saved preset", "file", c.SavePreset)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	r := &dotmatrix.Renderer{Logger: logger}
	data := <-r.Export(ctx, src, s, tgt.Size())
	if data == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.New("rendering failed")
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote image",
		"file", c.Output,
		"variant", s.Variant,
		"target", tgt,
		"bytes", len(data),
		"elapsed", time.Since(start))
	return nil
}
