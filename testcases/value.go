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

var valueCases = []Scenario{
	{
		Name:     "spot_dark",
		Source:   Spot(160, 160),
		Width:    200,
		Height:   200,
		Settings: with(dotmatrix.ValueAliasing, nil),
	},
	{
		Name:   "spot_light_threshold",
		Source: Spot(160, 160),
		Width:  200,
		Height: 200,
		Settings: with(dotmatrix.ValueAliasing, func(s *dotmatrix.Settings) {
			s.Background = dotmatrix.BackgroundLight
			s.LowerLimit = 25
		}),
	},
	{
		Name:   "ramp_pure_value",
		Source: HueRamp(200, 200),
		Width:  200,
		Height: 200,
		Settings: with(dotmatrix.ValueAliasing, func(s *dotmatrix.Settings) {
			s.IsPureValue = true
			s.IsCircular = false
		}),
	},
	{
		Name:   "ramp_print",
		Source: HueRamp(200, 260),
		Width:  200,
		Height: 283,
		Settings: with(dotmatrix.ValueAliasing, func(s *dotmatrix.Settings) {
			s.IsMonochrome = false
			s.CMYK = true
			s.Background = dotmatrix.BackgroundLight
		}),
	},
}
