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
	"image/color"

	"seehuhn.de/go/dotmatrix/coverage"
	"seehuhn.de/go/dotmatrix/tone"
)

// value renders the ValueAliasing pipeline.  The brightness of a cell
// sets the area of its dot; with IsPureValue all dots have full size and
// show their brightness as a grey level instead.
func (p *pass) value() {
	f := p.s.Variant.Formula(p.bounds.Dy() > p.bounds.Dx(), p.s.CMYK)
	g, _ := p.sample(f, p.bounds)
	if g.IsEmpty() {
		return
	}

	cw := float64(p.bounds.Dx()) / float64(g.Cols)
	ch := float64(p.bounds.Dy()) / float64(g.Rows)
	base := min(cw, ch) * (1 - p.cellGap())
	light := p.bg.light()
	lv := p.s.Levels()
	fg := p.bg.foreground()

	for y := range g.Rows {
		for x := range g.Cols {
			c, ok := g.At(x, y)
			if !ok {
				continue
			}
			b := lv.Apply(tone.Luma(c))
			m := tone.SizeMultiplier(b, light)
			if !tone.Visible(m, p.s.LowerLimit) {
				continue
			}

			var col color.NRGBA
			size := base
			switch {
			case p.s.IsPureValue:
				col = color.NRGBA{R: b, G: b, B: b, A: 255}
			case p.s.IsMonochrome:
				col = fg
				size *= coverage.SizeMultiplier(m, p.s.IsAntiAliased)
			default:
				col = lv.Color(c)
				size *= coverage.SizeMultiplier(m, p.s.IsAntiAliased)
			}
			if p.s.CMYK {
				col = tone.SimulatePrint(col)
			}

			cx := float64(p.bounds.Min.X) + (float64(x)+0.5)*cw
			cy := float64(p.bounds.Min.Y) + (float64(y)+0.5)*ch
			p.dot(cx, cy, size, p.s.IsCircular, col)
		}
	}
}
