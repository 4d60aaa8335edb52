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

// Package grid downsamples a bitmap into the cell grid of a dot matrix.
//
// The grid size follows from a 0-100 resolution value and a per-pipeline
// Formula.  The part of the source image used for the grid is chosen to
// match the aspect ratio of the output canvas, with crop offsets selecting
// which part of the excess is discarded.  Sampling is nearest-neighbour,
// so every cell holds the colour of exactly one source pixel.
package grid

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DefaultAlphaThreshold is the largest alpha value (0-255) for which a
// sampled pixel is treated as absent.
const DefaultAlphaThreshold = 10

// aspectTolerance is the largest difference between the image and canvas
// aspect ratios for which no cropping takes place.
const aspectTolerance = 0.01

// ColorGrid is a rows × cols array of colour cells.  A cell can be null,
// meaning that the source is transparent there.
type ColorGrid struct {
	Cols, Rows int

	cells []color.NRGBA
	null  []bool
}

// New allocates a grid with all cells set to opaque black.
func New(cols, rows int) *ColorGrid {
	cols = max(cols, 0)
	rows = max(rows, 0)
	g := &ColorGrid{
		Cols:  cols,
		Rows:  rows,
		cells: make([]color.NRGBA, cols*rows),
		null:  make([]bool, cols*rows),
	}
	for i := range g.cells {
		g.cells[i].A = 255
	}
	return g
}

// FromImage copies img into a new grid, one cell per pixel.  Pixels with
// alpha at or below threshold become null cells.
func FromImage(img image.Image, threshold uint8) *ColorGrid {
	b := img.Bounds()
	g := New(b.Dx(), b.Dy())
	for y := range g.Rows {
		for x := range g.Cols {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A <= threshold {
				g.SetNull(x, y)
				continue
			}
			g.Set(x, y, c)
		}
	}
	return g
}

// IsEmpty reports whether the grid has no cells.
func (g *ColorGrid) IsEmpty() bool {
	return g == nil || g.Cols <= 0 || g.Rows <= 0
}

// In reports whether (x, y) is a cell of the grid.
func (g *ColorGrid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Cols && y < g.Rows
}

// At returns the colour of cell (x, y).  The second return value is false
// for null cells and for coordinates outside the grid.
func (g *ColorGrid) At(x, y int) (color.NRGBA, bool) {
	if !g.In(x, y) {
		return color.NRGBA{}, false
	}
	i := y*g.Cols + x
	if g.null[i] {
		return color.NRGBA{}, false
	}
	return g.cells[i], true
}

// Set stores an opaque colour in cell (x, y).
func (g *ColorGrid) Set(x, y int, c color.NRGBA) {
	i := y*g.Cols + x
	g.cells[i] = c
	g.null[i] = false
}

// SetNull marks cell (x, y) as absent.
func (g *ColorGrid) SetNull(x, y int) {
	i := y*g.Cols + x
	g.cells[i] = color.NRGBA{}
	g.null[i] = true
}

// Map returns a new grid with f applied to every non-null cell.
func (g *ColorGrid) Map(f func(color.NRGBA) color.NRGBA) *ColorGrid {
	out := &ColorGrid{
		Cols:  g.Cols,
		Rows:  g.Rows,
		cells: make([]color.NRGBA, len(g.cells)),
		null:  append([]bool(nil), g.null...),
	}
	for i, c := range g.cells {
		if !g.null[i] {
			out.cells[i] = f(c)
		}
	}
	return out
}

// Formula computes the grid width from a resolution value.
type Formula struct {
	Base  float64 // columns at resolution 0
	Scale float64 // additional columns at resolution 100
}

// Dims returns the grid dimensions for a canvas of the given size.  The
// width is floor(Base + resolution/100*Scale), the height keeps the
// canvas aspect ratio.  Resolution is clamped to [0, 100].
func (f Formula) Dims(resolution float64, canvasW, canvasH int) (cols, rows int) {
	if canvasW <= 0 || canvasH <= 0 {
		return 0, 0
	}
	resolution = clamp(resolution, 0, 100)
	cols = int(math.Floor(f.Base + resolution/100*f.Scale))
	if cols <= 0 {
		return 0, 0
	}
	rows = int(math.Round(float64(cols) * float64(canvasH) / float64(canvasW)))
	if rows <= 0 {
		return 0, 0
	}
	return cols, rows
}

// Sample downsamples the region sr of src into a cols × rows grid with
// nearest-neighbour sampling.  Cells whose source alpha is at or below
// threshold are null.  Degenerate sizes give an empty grid.
func Sample(src image.Image, sr image.Rectangle, cols, rows int, threshold uint8) *ColorGrid {
	sr = sr.Intersect(src.Bounds())
	if cols <= 0 || rows <= 0 || sr.Empty() {
		return New(0, 0)
	}
	small := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	draw.NearestNeighbor.Scale(small, small.Rect, src, sr, draw.Src, nil)
	return FromImage(small, threshold)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}
