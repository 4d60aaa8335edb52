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
	"seehuhn.de/go/dotmatrix/grid"
	"seehuhn.de/go/dotmatrix/tone"
)

// glowCutoff is the brightness above which a glyph dot glows.
const glowCutoff = 30

// glyphDot is one dot of the glyph grid, before drawing.
type glyphDot struct {
	cx, cy     float64
	size       float64
	brightness uint8
	color      color.NRGBA
}

// glyph renders the Glyph Mirror pipeline: a square grid of odd width,
// framed by a circle if IsCircular is set, with a glow around bright
// dots.
func (p *pass) glyph() {
	side := min(p.bounds.Dx(), p.bounds.Dy())
	x0 := p.bounds.Min.X + (p.bounds.Dx()-side)/2
	y0 := p.bounds.Min.Y + (p.bounds.Dy()-side)/2

	d := coverage.Diameter(p.s.Resolution)
	crop := grid.CropFor(p.src.Bounds(), 1, 1, p.s.CropOffsetX, p.s.CropOffsetY)
	g := grid.Sample(p.src, crop.Source, d, d, grid.DefaultAlphaThreshold)
	p.cols, p.rows = g.Cols, g.Rows
	if g.IsEmpty() {
		return
	}

	var mask *coverage.Mask
	if p.s.IsCircular {
		mask = coverage.Circle(d)
	}

	cell := float64(side) / float64(d)
	base := cell * (1 - p.cellGap())
	light := p.bg.light()
	lv := p.s.Levels()

	var dots []glyphDot
	for y := range d {
		for x := range d {
			c, ok := g.At(x, y)
			if !ok {
				continue
			}
			b := lv.Apply(tone.Luma(c))
			if !tone.Visible(tone.SizeMultiplier(b, light), p.s.LowerLimit) {
				continue
			}
			size := base
			if mask != nil {
				size *= coverage.SizeMultiplier(mask.At(x, y), p.s.IsAntiAliased)
			}
			if size <= coverage.MinDrawSize {
				continue
			}
			dot := glyphDot{
				cx:         float64(x0) + (float64(x)+0.5)*cell,
				cy:         float64(y0) + (float64(y)+0.5)*cell,
				size:       size,
				brightness: b,
				color:      p.color(c),
			}
			dots = append(dots, dot)
			p.dot(dot.cx, dot.cy, dot.size, true, dot.color)
		}
	}

	p.glow(dots)
}
