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

package blob

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/dotmatrix/grid"
)

func solid(cols, rows int, c color.NRGBA) *grid.ColorGrid {
	g := grid.New(cols, rows)
	for y := range rows {
		for x := range cols {
			g.Set(x, y, c)
		}
	}
	return g
}

func randomGrid(rng *rand.Rand, cols, rows int) *grid.ColorGrid {
	// a small palette gives many merge opportunities
	palette := []color.NRGBA{
		{R: 250, G: 20, B: 20, A: 255},
		{R: 230, G: 40, B: 30, A: 255},
		{R: 20, G: 20, B: 240, A: 255},
		{R: 240, G: 240, B: 240, A: 255},
	}
	g := grid.New(cols, rows)
	for y := range rows {
		for x := range cols {
			if rng.IntN(20) == 0 {
				g.SetNull(x, y)
				continue
			}
			g.Set(x, y, palette[rng.IntN(len(palette))])
		}
	}
	return g
}

// checkTiling verifies that blobs cover every cell of a cols × rows grid
// exactly once.
func checkTiling(t *testing.T, blobs []Blob, cols, rows int) {
	t.Helper()
	count := make([]int, cols*rows)
	area := 0
	for _, b := range blobs {
		require.False(t, b.Filler)
		area += b.Size * b.Size
		for y := b.Y; y < b.Y+b.Size; y++ {
			for x := b.X; x < b.X+b.Size; x++ {
				require.True(t, x < cols && y < rows, "blob %+v leaves the grid", b)
				count[y*cols+x]++
			}
		}
	}
	require.Equal(t, cols*rows, area)
	for i, n := range count {
		require.Equal(t, 1, n, "cell %d covered %d times", i, n)
	}
}

func TestTwoByTwoRed(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	g := solid(2, 2, red)

	blobs := Merge(g, 100)
	require.Len(t, blobs, 1)
	assert.Equal(t, Blob{X: 0, Y: 0, Size: 2, Color: red}, blobs[0])

	blobs = Merge(g, 0)
	require.Len(t, blobs, 4)
	for i, b := range blobs {
		assert.Equal(t, 1, b.Size)
		assert.Equal(t, i%2, b.X)
		assert.Equal(t, i/2, b.Y)
	}
}

func TestTilingProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for range 50 {
		cols := 1 + rng.IntN(40)
		rows := 1 + rng.IntN(40)
		g := randomGrid(rng, cols, rows)
		sens := rng.Float64() * 100
		checkTiling(t, Merge(g, sens), cols, rows)
	}
}

func TestAnchorsRowMajor(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 9))
	g := randomGrid(rng, 30, 20)
	blobs := Merge(g, 60)
	for i := 1; i < len(blobs); i++ {
		a, b := blobs[i-1], blobs[i]
		assert.True(t, a.Y < b.Y || (a.Y == b.Y && a.X < b.X),
			"anchor %d (%d,%d) not after (%d,%d)", i, b.X, b.Y, a.X, a.Y)
	}
}

func TestGreedyGrowth(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	g := solid(3, 3, red)
	g.Set(2, 2, blue)

	// the blue corner stops the anchor at size 2
	blobs := Merge(g, 50)
	checkTiling(t, blobs, 3, 3)
	assert.Equal(t, 2, blobs[0].Size)
	assert.Equal(t, 6, len(blobs))

	// cells already claimed cannot be reused
	for _, b := range blobs[1:] {
		assert.Equal(t, 1, b.Size)
	}
}

func TestNullCells(t *testing.T) {
	g := solid(3, 3, color.NRGBA{G: 255, A: 255})
	g.SetNull(1, 1)

	blobs := Merge(g, 100)
	checkTiling(t, blobs, 3, 3)
	var empty []Blob
	for _, b := range blobs {
		if b.Empty {
			empty = append(empty, b)
		}
	}
	require.Len(t, empty, 1)
	assert.Equal(t, 1, empty[0].X)
	assert.Equal(t, 1, empty[0].Y)

	r := &Result{Blobs: blobs, MaxSize: MaxSize(blobs)}
	for _, b := range r.Visible(0) {
		assert.False(t, b.Empty, "null cells are never drawn")
	}
}

func TestSensitivityMonotone(t *testing.T) {
	palette := []color.NRGBA{
		{R: 200, G: 30, B: 30, A: 255},
		{R: 30, G: 30, B: 200, A: 255},
		{R: 200, G: 30, B: 130, A: 255},
	}
	for a := 1; a <= 5; a++ {
		for b := 1; b <= 5; b++ {
			g := grid.New(16, 16)
			for y := range 16 {
				for x := range 16 {
					g.Set(x, y, palette[((x/4)*a+(y/4)*b)%3])
				}
			}
			prev := 0.0
			for s := 0.0; s <= 100; s += 5 {
				blobs := Merge(g, s)
				avg := float64(16*16) / float64(len(blobs))
				require.GreaterOrEqual(t, avg, prev, "pattern (%d,%d), sensitivity %g", a, b, s)
				prev = avg
			}
		}
	}
}

func TestFillGaps(t *testing.T) {
	tests := []struct {
		size    int
		fillers int
		area    int
	}{
		{2, 0, 0},
		{12, 12, 12},
		{20, 20, 56},
	}
	for _, tc := range tests {
		g := solid(tc.size, tc.size, color.NRGBA{R: 90, A: 255})
		blobs := Merge(g, 100)
		require.Len(t, blobs, 1)

		fillers := FillGaps(blobs, g, 0)
		assert.Len(t, fillers, tc.fillers, "size %d", tc.size)
		area := 0
		cx, cy := blobs[0].Center()
		r := blobs[0].Radius(0)
		for _, f := range fillers {
			assert.True(t, f.Filler)
			area += f.Size * f.Size
			if f.Size == 1 {
				assert.False(t, intersects(float64(f.X), float64(f.Y), cx, cy, r))
			}
		}
		assert.Equal(t, tc.area, area, "size %d", tc.size)
	}
}

func TestFillGapsNested(t *testing.T) {
	g := solid(40, 40, color.NRGBA{B: 90, A: 255})
	fillers := FillGaps(Merge(g, 100), g, 0)

	sizes := map[int]bool{}
	for _, f := range fillers {
		sizes[f.Size] = true
	}
	// large corners need fillers of several sizes
	assert.True(t, sizes[5])
	assert.True(t, sizes[1])
	assert.Len(t, fillers, 92)
}

func TestSelectMarkers(t *testing.T) {
	mk := func(sizes ...int) []Blob {
		out := make([]Blob, len(sizes))
		for i, s := range sizes {
			out[i] = Blob{X: i, Size: s}
		}
		return out
	}

	blobs := mk(1, 3, 2, 3, 1)
	assert.Equal(t, 1, SelectMarkers(blobs))
	assert.True(t, blobs[1].Marker, "ties go to the earlier anchor")
	assert.False(t, blobs[3].Marker)

	sizes := make([]int, 100)
	for i := range sizes {
		sizes[i] = 1 + i%7
	}
	blobs = mk(sizes...)
	assert.Equal(t, 4, SelectMarkers(blobs))

	blobs = mk(make([]int, 1000)...)
	assert.Equal(t, 5, SelectMarkers(blobs))

	blobs = mk(4, 4)
	blobs[0].Empty = true
	assert.Equal(t, 1, SelectMarkers(blobs))
	assert.False(t, blobs[0].Marker)
	assert.True(t, blobs[1].Marker)

	assert.Zero(t, SelectMarkers(nil))
}

func TestDetectAndVisible(t *testing.T) {
	g := solid(12, 12, color.NRGBA{R: 255, G: 255, A: 255})
	g.Set(11, 0, color.NRGBA{A: 255})
	r := Detect(g, Options{Sensitivity: 100, PixelGap: 50, Markers: true})

	checkTiling(t, r.Blobs[:r.Primary], 12, 12)
	assert.Equal(t, 11, r.MaxSize)
	assert.InDelta(t, 0.08, r.GapFraction, 1e-12)

	markers := 0
	for _, b := range r.Blobs {
		if b.Marker {
			markers++
		}
	}
	// 24 primary blobs and 12 fillers give ceil(0.04*36) = 2 markers
	assert.Equal(t, 36, len(r.Blobs))
	assert.Equal(t, 2, markers)
	assert.True(t, r.Blobs[0].Marker)
	assert.True(t, r.Blobs[1].Marker, "first of the size 1 blobs")

	assert.Len(t, r.Visible(0), len(r.Blobs))
	big := r.Visible(100)
	require.Len(t, big, 1)
	assert.Equal(t, 11, big[0].Size)
}

func TestEmptyGrid(t *testing.T) {
	assert.Nil(t, Merge(grid.New(0, 4), 50))
	r := Detect(nil, Options{Sensitivity: 50})
	assert.Empty(t, r.Blobs)
	assert.Zero(t, r.MaxSize)
}
