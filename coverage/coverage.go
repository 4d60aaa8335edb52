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

// Package coverage computes how much of each grid cell lies inside a
// shape, at the resolution of the dot grid rather than of output pixels.
//
// The circular mask frames a square grid as a round glyph; boundary cells
// get fractional values which the renderer turns into smaller dots.
package coverage

import (
	"math"
)

// MinDrawSize is the smallest dot width or height, in output pixels,
// which is still drawn.
const MinDrawSize = 0.1

// subSamples is the number of samples per cell in each direction.
const subSamples = 5

// Diameter returns the width of the circular grid for a resolution in
// [0, 100].  The result is always odd, so that the grid has a centre cell,
// and at least 9.
func Diameter(resolution float64) int {
	if math.IsNaN(resolution) {
		resolution = 0
	}
	resolution = min(max(resolution, 0), 100)
	return int(math.Floor((0.32*resolution+9)/2))*2 + 1
}

// Mask holds the coverage of a square grid of cells.
type Mask struct {
	Size int
	Cov  []float64 // row-major, len = Size*Size
}

// At returns the coverage of cell (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return 0
	}
	return m.Cov[y*m.Size+x]
}

// Circle returns the coverage of the circle inscribed in a size × size
// grid.  Boundary cells are sampled on a 5×5 sub-grid; cells whose
// corners are all inside get 1 directly, cells far outside get 0.
func Circle(size int) *Mask {
	size = max(size, 0)
	m := &Mask{
		Size: size,
		Cov:  make([]float64, size*size),
	}
	c := float64(size) / 2
	radius := float64(size) / 2
	r2 := radius * radius

	for y := range size {
		for x := range size {
			// distance of the cell centre from the circle centre
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			if math.Hypot(dx, dy) > radius+1.5 {
				continue
			}

			// farthest corner of the cell
			fx := math.Abs(dx) + 0.5
			fy := math.Abs(dy) + 0.5
			if fx*fx+fy*fy <= r2 {
				m.Cov[y*size+x] = 1
				continue
			}

			m.Cov[y*size+x] = sampleCell(float64(x)-c, float64(y)-c, r2)
		}
	}
	return m
}

// sampleCell returns the fraction of the 5×5 sub-samples of the unit
// cell with top-left corner (x0, y0) which lie within the circle of
// squared radius r2 around the origin.
func sampleCell(x0, y0, r2 float64) float64 {
	inside := 0
	for j := range subSamples {
		sy := y0 + (float64(j)+0.5)/subSamples
		for i := range subSamples {
			sx := x0 + (float64(i)+0.5)/subSamples
			if sx*sx+sy*sy <= r2 {
				inside++
			}
		}
	}
	return float64(inside) / (subSamples * subSamples)
}

// SizeMultiplier converts a cell coverage into a relative dot size.
// With anti-aliasing the dot area is proportional to the coverage;
// without, a cell is either fully drawn (coverage at least 1/2) or not.
func SizeMultiplier(coverage float64, antiAliased bool) float64 {
	coverage = min(max(coverage, 0), 1)
	if antiAliased {
		return math.Sqrt(coverage)
	}
	if coverage >= 0.5 {
		return 1
	}
	return 0
}

// Drawable reports whether a shape of the given width and height is
// large enough to be drawn.
func Drawable(w, h float64) bool {
	return w > MinDrawSize && h > MinDrawSize
}
