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
	"seehuhn.de/go/dotmatrix/coverage"
	"seehuhn.de/go/dotmatrix/palette"
	"seehuhn.de/go/dotmatrix/tone"
)

// cells renders the Wallpaper and PhotoWidget pipelines: one dot per
// cell in the colour of the cell.
func (p *pass) cells() {
	f := p.s.Variant.Formula(p.bounds.Dy() > p.bounds.Dx(), p.s.CMYK)
	g, _ := p.sample(f, p.bounds)
	if g.IsEmpty() {
		return
	}
	if p.s.PaletteSize > 0 {
		g = palette.Reduce(g, p.s.PaletteSize)
	}

	cw := float64(p.bounds.Dx()) / float64(g.Cols)
	ch := float64(p.bounds.Dy()) / float64(g.Rows)
	size := min(cw, ch) * (1 - p.cellGap())
	if !coverage.Drawable(size, size) {
		return
	}
	light := p.bg.light()

	for y := range g.Rows {
		for x := range g.Cols {
			c, ok := g.At(x, y)
			if !ok {
				continue
			}
			c = p.color(c)
			if p.s.LowerLimit > 0 {
				m := tone.SizeMultiplier(tone.Luma(c), light)
				if !tone.Visible(m, p.s.LowerLimit) {
					continue
				}
			}
			cx := float64(p.bounds.Min.X) + (float64(x)+0.5)*cw
			cy := float64(p.bounds.Min.Y) + (float64(y)+0.5)*ch
			p.dot(cx, cy, size, p.s.IsCircular, c)
		}
	}
}
