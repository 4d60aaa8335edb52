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

package surface

// blend combines the source colour s, with effective opacity a, and the
// destination d.  Colours are non-premultiplied.
func blend(mode CompositeMode, s rgba, a float64, d rgba) rgba {
	switch mode {
	case Lighter:
		oa := min(a+d.a, 1)
		if oa <= 0 {
			return rgba{}
		}
		return rgba{
			r: min(s.r*a+d.r*d.a, 1) / oa,
			g: min(s.g*a+d.g*d.a, 1) / oa,
			b: min(s.b*a+d.b*d.a, 1) / oa,
			a: oa,
		}

	case Overlay:
		// Where the backdrop is opaque the source colour is replaced by
		// the blend result, where it is transparent the source shows
		// unchanged.
		s = rgba{
			r: (1-d.a)*s.r + d.a*overlay(d.r, s.r),
			g: (1-d.a)*s.g + d.a*overlay(d.g, s.g),
			b: (1-d.a)*s.b + d.a*overlay(d.b, s.b),
		}
	}

	oa := a + d.a*(1-a)
	if oa <= 0 {
		return rgba{}
	}
	return rgba{
		r: (s.r*a + d.r*d.a*(1-a)) / oa,
		g: (s.g*a + d.g*d.a*(1-a)) / oa,
		b: (s.b*a + d.b*d.a*(1-a)) / oa,
		a: oa,
	}
}

// overlay is the separable overlay blend function for backdrop b and
// source s.
func overlay(b, s float64) float64 {
	if b <= 0.5 {
		return 2 * s * b
	}
	return 1 - 2*(1-s)*(1-b)
}
