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

package palette

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/dotmatrix/grid"
	"seehuhn.de/go/dotmatrix/tone"
)

func TestBackgroundSolid(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	teal := color.NRGBA{R: 0, G: 128, B: 128, A: 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = teal.R, teal.G, teal.B, teal.A
	}
	bg := Background(img)
	assert.Equal(t, uint8(255), bg.A)
	assert.Less(t, tone.Distance(teal, bg), 8.0)
}

func TestBackgroundEmpty(t *testing.T) {
	assert.Equal(t, fallback, Background(nil))
	assert.Equal(t, fallback, Background(image.NewNRGBA(image.Rectangle{})))
}

func TestReduceOff(t *testing.T) {
	g := grid.New(4, 4)
	g.Set(1, 1, color.NRGBA{R: 10, A: 255})
	for _, k := range []int{0, 1, 17, -3} {
		assert.Same(t, g, Reduce(g, k), "k = %d", k)
	}
}

func TestReduceFewColors(t *testing.T) {
	g := grid.New(3, 3)
	g.Set(0, 0, color.NRGBA{R: 200, A: 255})
	// black and red only
	assert.Same(t, g, Reduce(g, 2))
}

func TestReduce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	g := grid.New(20, 20)
	for y := range 20 {
		for x := range 20 {
			if x == y {
				g.SetNull(x, y)
				continue
			}
			g.Set(x, y, color.NRGBA{
				R: uint8(rng.IntN(256)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
				A: 255,
			})
		}
	}

	for _, k := range []int{2, 5, 16} {
		out := Reduce(g, k)
		require.Equal(t, g.Cols, out.Cols)
		require.Equal(t, g.Rows, out.Rows)

		colors := map[color.NRGBA]bool{}
		for y := range out.Rows {
			for x := range out.Cols {
				c, ok := out.At(x, y)
				if x == y {
					assert.False(t, ok, "null cells stay null")
					continue
				}
				require.True(t, ok)
				assert.Equal(t, uint8(255), c.A)
				colors[c] = true
			}
		}
		assert.LessOrEqual(t, len(colors), k)
	}
}

func TestReduceDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	g := grid.New(16, 12)
	for y := range g.Rows {
		for x := range g.Cols {
			g.Set(x, y, color.NRGBA{
				R: uint8(rng.IntN(256)),
				G: uint8(rng.IntN(256)),
				B: uint8(rng.IntN(256)),
				A: 255,
			})
		}
	}

	first := Reduce(g, 6)
	for range 5 {
		assert.Equal(t, first, Reduce(g, 6))
	}
}

func TestReduceGroups(t *testing.T) {
	reds := []color.NRGBA{
		{R: 250, G: 10, B: 10, A: 255},
		{R: 240, G: 20, B: 0, A: 255},
		{R: 230, G: 0, B: 20, A: 200},
	}
	blues := []color.NRGBA{
		{R: 0, G: 10, B: 250, A: 255},
		{R: 20, G: 0, B: 240, A: 255},
	}
	g := grid.New(5, 2)
	for x, c := range reds {
		g.Set(x, 0, c)
	}
	for x, c := range blues {
		g.Set(x, 1, c)
	}
	g.SetNull(3, 1)
	g.SetNull(4, 1)
	g.SetNull(3, 0)
	g.SetNull(4, 0)

	out := Reduce(g, 2)
	red, _ := out.At(0, 0)
	blue, _ := out.At(0, 1)
	assert.NotEqual(t, red, blue)
	assert.Greater(t, red.R, uint8(200))
	assert.Greater(t, blue.B, uint8(200))
	for x := range reds {
		c, ok := out.At(x, 0)
		require.True(t, ok)
		assert.Equal(t, [3]uint8{red.R, red.G, red.B}, [3]uint8{c.R, c.G, c.B})
		assert.Equal(t, reds[x].A, c.A, "alpha is kept")
	}
	c, _ := out.At(1, 1)
	assert.Equal(t, blue, c)
}

func TestSeed(t *testing.T) {
	counts := map[color.NRGBA]int{
		{R: 10, G: 10, B: 10, A: 255}:    1,
		{R: 200, G: 200, B: 200, A: 255}: 3,
		{R: 0, G: 0, B: 0, A: 255}:       1,
		{R: 190, G: 200, B: 210, A: 255}: 2,
	}
	cc := seed(counts, 2)
	require.Len(t, cc, 2)
	assert.Equal(t, coordinates(color.NRGBA{R: 200, G: 200, B: 200, A: 255}), cc[0].Center)
	assert.Equal(t, coordinates(color.NRGBA{R: 0, G: 0, B: 0, A: 255}), cc[1].Center)
}
