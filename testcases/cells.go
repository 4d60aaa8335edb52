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

package testcases

import (
	"image/color"

	"seehuhn.de/go/dotmatrix"
)

var wallpaperCases = []Scenario{
	{
		Name:     "ramp_phone",
		Source:   HueRamp(300, 200),
		Width:    126,
		Height:   280,
		Settings: with(dotmatrix.Wallpaper, nil),
	},
	{
		Name:   "ramp_desktop_squares",
		Source: HueRamp(300, 200),
		Width:  384,
		Height: 216,
		Settings: with(dotmatrix.Wallpaper, func(s *dotmatrix.Settings) {
			s.IsCircular = false
			s.Resolution = 20
		}),
	},
	{
		Name:   "cutout_transparent",
		Source: Cutout(160, 160, color.NRGBA{R: 0x2A, G: 0x9D, B: 0x8F, A: 255}),
		Width:  200,
		Height: 200,
		Settings: with(dotmatrix.Wallpaper, func(s *dotmatrix.Settings) {
			s.IsTransparent = true
		}),
	},
	{
		Name:   "blocks_easter_egg",
		Source: Blocks(200, 200, 5),
		Width:  200,
		Height: 200,
		Settings: with(dotmatrix.Wallpaper, func(s *dotmatrix.Settings) {
			s.EasterEgg = 3
			s.PixelGap = 60
		}),
	},
}

var photoCases = []Scenario{
	{
		Name:     "blocks",
		Source:   Blocks(150, 150, 6),
		Width:    150,
		Height:   150,
		Settings: with(dotmatrix.PhotoWidget, nil),
	},
	{
		Name:   "ramp_monochrome_light",
		Source: HueRamp(150, 150),
		Width:  150,
		Height: 150,
		Settings: with(dotmatrix.PhotoWidget, func(s *dotmatrix.Settings) {
			s.IsMonochrome = true
			s.Background = dotmatrix.BackgroundLight
			s.LowerLimit = 30
		}),
	},
	{
		Name:   "noise_hex_background",
		Source: Noise(64, 64, 5),
		Width:  150,
		Height: 150,
		Settings: with(dotmatrix.PhotoWidget, func(s *dotmatrix.Settings) {
			s.Background = "#1d3557"
			s.Exposure = 70
			s.Contrast = 80
		}),
	},
}
