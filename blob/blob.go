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

// Package blob merges similar neighbouring grid cells into square blobs.
//
// The merge scans the grid in row-major order.  Every cell not yet part
// of a blob becomes an anchor, and a square is grown from it one row and
// column at a time for as long as all new cells are unclaimed and close
// in colour to the anchor.  The resulting primary blobs tile the grid:
// they never overlap and cover every cell exactly once.
//
// A blob is drawn as a circle, so the corners of large blobs stay empty.
// FillGaps covers these corners with smaller filler blobs.
package blob

import (
	"image/color"
	"math"

	"seehuhn.de/go/dotmatrix/grid"
	"seehuhn.de/go/dotmatrix/tone"
)

// maxDistance is the colour distance corresponding to sensitivity 100.
const maxDistance = 160

// Blob is a square of Size × Size grid cells with top-left cell (X, Y).
type Blob struct {
	X, Y, Size int

	// Color is the colour of the anchor cell.
	Color color.NRGBA

	// Empty is set for null grid cells.  Empty blobs are part of the
	// tiling but are never drawn.
	Empty bool

	// Filler is set for blobs created by FillGaps.
	Filler bool

	// Marker is set by SelectMarkers.
	Marker bool
}

// Center returns the centre of the blob in grid units.
func (b Blob) Center() (x, y float64) {
	h := float64(b.Size) / 2
	return float64(b.X) + h, float64(b.Y) + h
}

// Radius returns the radius, in grid units, of the circle drawn for the
// blob.
func (b Blob) Radius(gapFraction float64) float64 {
	return max(float64(b.Size)-gapFraction, 0) / 2
}

// Threshold returns the largest colour distance still counted as similar
// for a sensitivity in [0, 100].
func Threshold(sensitivity float64) float64 {
	return tone.Clamp(sensitivity) / 100 * maxDistance
}

// GapFraction converts the pixel gap slider into the part of a grid cell
// left empty between neighbouring dots.
func GapFraction(pixelGap float64) float64 {
	return tone.Clamp(pixelGap) * 16 / 100 / 100
}

// Merge partitions g into primary blobs.  The blobs are returned in the
// row-major order of their anchors.  With sensitivity 0 every blob has
// size 1.
func Merge(g *grid.ColorGrid, sensitivity float64) []Blob {
	if g.IsEmpty() {
		return nil
	}
	cols, rows := g.Cols, g.Rows
	visited := make([]bool, cols*rows)
	threshold := Threshold(sensitivity)
	merge := tone.Clamp(sensitivity) > 0

	similar := func(x, y int, anchor color.NRGBA) bool {
		if visited[y*cols+x] {
			return false
		}
		c, ok := g.At(x, y)
		return ok && tone.Distance(anchor, c) <= threshold
	}

	var blobs []Blob
	for y := range rows {
		for x := range cols {
			if visited[y*cols+x] {
				continue
			}
			anchor, ok := g.At(x, y)
			if !ok {
				visited[y*cols+x] = true
				blobs = append(blobs, Blob{X: x, Y: y, Size: 1, Empty: true})
				continue
			}

			size := 1
			for merge && x+size < cols && y+size < rows {
				grow := true
				// the new column, including the new corner cell
				for j := y; j <= y+size && grow; j++ {
					grow = similar(x+size, j, anchor)
				}
				// the new row
				for i := x; i < x+size && grow; i++ {
					grow = similar(i, y+size, anchor)
				}
				if !grow {
					break
				}
				size++
			}

			for j := y; j < y+size; j++ {
				for i := x; i < x+size; i++ {
					visited[j*cols+i] = true
				}
			}
			blobs = append(blobs, Blob{X: x, Y: y, Size: size, Color: anchor})
		}
	}
	return blobs
}

// FillGaps returns filler blobs for the corners which the circles of the
// given blobs leave uncovered.  A cell inside a blob counts as uncovered
// if it does not intersect the blob's circle at all.  Uncovered cells are
// grouped into squares with the same greedy growth as Merge, without a
// colour check, and the resulting fillers are processed in turn until no
// uncovered cells remain.
func FillGaps(blobs []Blob, g *grid.ColorGrid, gapFraction float64) []Blob {
	var stack []Blob
	for _, b := range blobs {
		if b.Size > 1 && !b.Empty {
			stack = append(stack, b)
		}
	}

	var fillers []Blob
	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, f := range fillCorners(parent, g, gapFraction) {
			fillers = append(fillers, f)
			if f.Size > 1 {
				stack = append(stack, f)
			}
		}
	}
	return fillers
}

// fillCorners grows filler squares over the cells of b outside its circle.
func fillCorners(b Blob, g *grid.ColorGrid, gapFraction float64) []Blob {
	n := b.Size
	cx, cy := b.Center()
	r := b.Radius(gapFraction)

	open := make([]bool, n*n)
	found := false
	for j := range n {
		for i := range n {
			if !intersects(float64(b.X+i), float64(b.Y+j), cx, cy, r) {
				open[j*n+i] = true
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	var out []Blob
	for j := range n {
		for i := range n {
			if !open[j*n+i] {
				continue
			}
			size := 1
			for i+size < n && j+size < n {
				grow := true
				for jj := j; jj <= j+size && grow; jj++ {
					grow = open[jj*n+i+size]
				}
				for ii := i; ii < i+size && grow; ii++ {
					grow = open[(j+size)*n+ii]
				}
				if !grow {
					break
				}
				size++
			}
			for jj := j; jj < j+size; jj++ {
				for ii := i; ii < i+size; ii++ {
					open[jj*n+ii] = false
				}
			}

			c, ok := g.At(b.X+i, b.Y+j)
			if !ok {
				c = b.Color
			}
			out = append(out, Blob{
				X:      b.X + i,
				Y:      b.Y + j,
				Size:   size,
				Color:  c,
				Filler: true,
			})
		}
	}
	return out
}

// intersects reports whether the unit cell with top-left corner (x, y)
// has a point within distance r of (cx, cy).
func intersects(x, y, cx, cy, r float64) bool {
	nx := min(max(cx, x), x+1)
	ny := min(max(cy, y), y+1)
	return math.Hypot(cx-nx, cy-ny) < r
}
