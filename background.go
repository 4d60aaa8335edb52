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
	"image"
	"image/color"
	"log/slog"

	"seehuhn.de/go/dotmatrix/palette"
	"seehuhn.de/go/dotmatrix/surface"
	"seehuhn.de/go/dotmatrix/tone"
)

var (
	darkColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	lightColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// eggColors are the band colours of the easter egg background.
var eggColors = [4]color.NRGBA{
	{R: 0xE4, G: 0x03, B: 0x03, A: 255},
	{R: 0xFF, G: 0xD6, B: 0x00, A: 255},
	{R: 0x00, G: 0x80, B: 0x26, A: 255},
	{R: 0x24, G: 0x40, B: 0x8E, A: 255},
}

// eggOrders are the band orders selectable by Settings.EasterEgg.
var eggOrders = [6][4]int{
	{0, 1, 2, 3},
	{3, 2, 1, 0},
	{1, 2, 3, 0},
	{2, 3, 0, 1},
	{3, 0, 1, 2},
	{0, 2, 1, 3},
}

// backdrop is the resolved background of a render pass.
type backdrop struct {
	color       color.NRGBA
	transparent bool
}

// light reports whether dots are drawn on a light background, where
// dark cells get the large dots.
func (b backdrop) light() bool {
	return !b.transparent && tone.Luma(b.color) >= 128
}

// foreground returns the dot colour which contrasts with the background.
func (b backdrop) foreground() color.NRGBA {
	if b.light() {
		return darkColor
	}
	return lightColor
}

// resolveBackground turns the background setting into a colour.
func resolveBackground(s Settings, src image.Image, logger *slog.Logger) backdrop {
	if s.IsTransparent {
		return backdrop{transparent: true}
	}

	var c color.NRGBA
	switch s.Background {
	case BackgroundTransparent:
		return backdrop{transparent: true}
	case BackgroundLight:
		c = lightColor
	case BackgroundAuto:
		c = palette.Background(src)
	case BackgroundDark, "":
		c = darkColor
	default:
		var err error
		c, err = tone.ParseHex(s.Background)
		if err != nil {
			logger.Warn("invalid background, using dark", "background", s.Background, "error", err)
			c = darkColor
		}
	}
	if s.CMYK {
		c = tone.SimulatePrint(c)
	}
	return backdrop{color: c}
}

// paintBackground fills the whole surface with the background.
func paintBackground(dst surface.Surface, bg backdrop, s Settings) {
	full := surface.RectOf(dst.Bounds())
	dst.ResetClip()
	dst.SetComposite(surface.SourceOver)
	dst.SetAlpha(1)
	dst.ClearRect(full)

	if s.EasterEgg > 0 {
		paintEasterEgg(dst, full, s.EasterEgg, s.CMYK)
		return
	}
	if bg.transparent {
		return
	}
	dst.FillRect(full, bg.color)
}

// paintEasterEgg fills r with four horizontal bands, in the order
// selected by n > 0.
func paintEasterEgg(dst surface.Surface, r surface.Rect, n int, cmyk bool) {
	order := eggOrders[(n-1)%len(eggOrders)]
	h := r.H / float64(len(order))
	for i, k := range order {
		c := eggColors[k]
		if cmyk {
			c = tone.SimulatePrint(c)
		}
		dst.FillRect(surface.Rect{X: r.X, Y: r.Y + float64(i)*h, W: r.W, H: h}, c)
	}
}
