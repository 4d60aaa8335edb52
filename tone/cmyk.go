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

package tone

import (
	"image/color"
	"math"
)

// CMYK is a device CMYK colour with components in [0, 1].
type CMYK struct {
	C, M, Y, K float64
}

// ToCMYK converts c with the naive device transform.  Pure black gives
// K = 1 and C = M = Y = 0.
func ToCMYK(c color.NRGBA) CMYK {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	k := 1 - max(r, g, b)
	if k >= 1 {
		return CMYK{K: 1}
	}
	return CMYK{
		C: (1 - r - k) / (1 - k),
		M: (1 - g - k) / (1 - k),
		Y: (1 - b - k) / (1 - k),
		K: k,
	}
}

// RGB converts back to an opaque RGB colour.
func (x CMYK) RGB() color.NRGBA {
	conv := func(v float64) uint8 {
		return uint8(math.Round(min(max(255*(1-v)*(1-x.K), 0), 255)))
	}
	return color.NRGBA{R: conv(x.C), G: conv(x.M), B: conv(x.Y), A: 255}
}

// SimulatePrint sends c through the CMYK round trip, as done for print
// previews.  The alpha value of c is kept.
func SimulatePrint(c color.NRGBA) color.NRGBA {
	out := ToCMYK(c).RGB()
	out.A = c.A
	return out
}
