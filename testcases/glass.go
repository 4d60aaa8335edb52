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

var glassCases = []Scenario{
	{
		Name:     "blocks",
		Source:   Blocks(200, 200, 4),
		Width:    200,
		Height:   200,
		Settings: with(dotmatrix.GlassDots, nil),
	},
	{
		Name:   "blocks_no_merge",
		Source: Blocks(200, 200, 4),
		Width:  200,
		Height: 200,
		Settings: with(dotmatrix.GlassDots, func(s *dotmatrix.Settings) {
			s.SimilaritySensitivity = 0
			s.IsMarkerEnabled = false
		}),
	},
	{
		Name:   "ramp_strong_lens",
		Source: HueRamp(240, 160),
		Width:  240,
		Height: 160,
		Settings: with(dotmatrix.GlassDots, func(s *dotmatrix.Settings) {
			s.IOR = 100
			s.SimilaritySensitivity = 70
			s.IsBackgroundBlurEnabled = true
			s.BlurAmount = 80
		}),
	},
	{
		Name:   "spot_fade_small",
		Source: Spot(160, 160),
		Width:  160,
		Height: 160,
		Settings: with(dotmatrix.GlassDots, func(s *dotmatrix.Settings) {
			s.LowerLimit = 40
			s.GrainAmount = 100
			s.GrainSize = 100
			s.Seed = 42
		}),
	},
}
