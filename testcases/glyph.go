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
	"seehuhn.de/go/dotmatrix"
)

var glyphCases = []Scenario{
	{
		Name:     "spot_circular",
		Source:   Spot(120, 120),
		Width:    180,
		Height:   180,
		Settings: with(dotmatrix.GlyphMirror, nil),
	},
	{
		Name:   "spot_square",
		Source: Spot(120, 120),
		Width:  180,
		Height: 180,
		Settings: with(dotmatrix.GlyphMirror, func(s *dotmatrix.Settings) {
			s.IsCircular = false
		}),
	},
	{
		Name:   "ramp_colour_glow",
		Source: HueRamp(200, 120),
		Width:  160,
		Height: 200,
		Settings: with(dotmatrix.GlyphMirror, func(s *dotmatrix.Settings) {
			s.IsMonochrome = false
			s.GlowStrength = 90
			s.Resolution = 100
			s.CropOffsetX = 0
		}),
	},
	{
		Name:   "spot_aliased",
		Source: Spot(90, 90),
		Width:  120,
		Height: 120,
		Settings: with(dotmatrix.GlyphMirror, func(s *dotmatrix.Settings) {
			s.IsAntiAliased = false
			s.Background = dotmatrix.BackgroundLight
		}),
	},
}
