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

// Package tone maps sampled cell colours to display values: luminance,
// exposure and contrast adjustment, brightness-driven dot sizes and a
// simple CMYK print simulation.
//
// All slider parameters are in [0, 100] with 50 as the neutral value.
// Out-of-range values are clamped, so they behave exactly like the
// nearest boundary.
package tone

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// Luma returns the Rec. 601 luminance of c, rounded to 0-255.
func Luma(c color.NRGBA) uint8 {
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return uint8(math.Round(min(y, 255)))
}

// Exposure converts the exposure slider to an additive offset in
// [-100, 100].
func Exposure(slider float64) float64 {
	return (Clamp(slider) - 50) * 2
}

// ContrastFactor converts the contrast slider to a factor in [0, 3].
// Values below 50 compress towards mid-grey, values above expand.
func ContrastFactor(slider float64) float64 {
	s := Clamp(slider)
	if s <= 50 {
		return s / 50
	}
	return 1 + (s-50)/50*2
}

// Levels is an exposure/contrast adjustment.
type Levels struct {
	Exposure float64 // slider, 0-100
	Contrast float64 // slider, 0-100
}

// Neutral is the identity adjustment.
var Neutral = Levels{Exposure: 50, Contrast: 50}

// Apply remaps one channel or luminance value.
func (l Levels) Apply(v uint8) uint8 {
	f := ContrastFactor(l.Contrast)
	out := ((float64(v)/255-0.5)*f+0.5)*255 + Exposure(l.Exposure)
	return uint8(math.Round(min(max(out, 0), 255)))
}

// IsNeutral reports whether Apply is the identity.
func (l Levels) IsNeutral() bool {
	return Clamp(l.Exposure) == 50 && Clamp(l.Contrast) == 50
}

// Color applies the adjustment to the three colour channels of c.
func (l Levels) Color(c color.NRGBA) color.NRGBA {
	if l.IsNeutral() {
		return c
	}
	return color.NRGBA{R: l.Apply(c.R), G: l.Apply(c.G), B: l.Apply(c.B), A: c.A}
}

// Grey returns the adjusted luminance of c as an opaque grey.
func (l Levels) Grey(c color.NRGBA) color.NRGBA {
	v := l.Apply(Luma(c))
	return color.NRGBA{R: v, G: v, B: v, A: c.A}
}

// SizeMultiplier maps a brightness value to a relative dot size in
// [0, 1].  On light backgrounds dark cells get the large dots.
func SizeMultiplier(brightness uint8, lightBackground bool) float64 {
	m := float64(brightness) / 255
	if lightBackground {
		m = 1 - m
	}
	return m
}

// Visible reports whether a dot with the given size multiplier survives
// the lower limit slider.  Dots at or below lowerLimit/100 are dropped.
func Visible(multiplier, lowerLimit float64) bool {
	return multiplier > Clamp(lowerLimit)/100
}

// MeanLuma returns the average luminance of the given colours, or 0 if
// there are none.
func MeanLuma(cs []color.NRGBA) float64 {
	if len(cs) == 0 {
		return 0
	}
	ys := make([]float64, len(cs))
	for i, c := range cs {
		ys[i] = float64(Luma(c))
	}
	return stat.Mean(ys, nil)
}

// Distance returns the Euclidean distance of a and b in 0-255 RGB space.
// The alpha channel is ignored.
func Distance(a, b color.NRGBA) float64 {
	return colorOf(a).DistanceRgb(colorOf(b)) * 255
}

// ParseHex parses a colour of the form "#rgb" or "#rrggbb".
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Clamp limits a slider value to [0, 100].  NaN maps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 100)
}

func colorOf(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
