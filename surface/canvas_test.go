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

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/dotmatrix/raster"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func assertPixel(t *testing.T, c *Canvas, x, y int, want color.NRGBA) {
	t.Helper()
	got := c.Image().NRGBAAt(x, y)
	for i, pair := range [][2]uint8{{got.R, want.R}, {got.G, want.G}, {got.B, want.B}, {got.A, want.A}} {
		assert.InDelta(t, int(pair[1]), int(pair[0]), 1,
			"pixel (%d,%d) channel %d: got %v, want %v", x, y, i, got, want)
	}
}

func TestFillRect(t *testing.T) {
	c := NewCanvas(8, 8)
	c.FillRect(Rect{X: 2, Y: 2, W: 4, H: 4}, red)

	assertPixel(t, c, 3, 3, red)
	assertPixel(t, c, 0, 0, color.NRGBA{})
	assertPixel(t, c, 6, 6, color.NRGBA{})
}

func TestFillRectHalfPixel(t *testing.T) {
	c := NewCanvas(4, 1)
	c.FillRect(Rect{X: 0.5, Y: 0, W: 1, H: 1}, red)

	// half of pixel 0 and half of pixel 1 are covered
	assertPixel(t, c, 0, 0, color.NRGBA{R: 255, A: 128})
	assertPixel(t, c, 1, 0, color.NRGBA{R: 255, A: 128})
}

func TestCompositeModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     CompositeMode
		backdrop color.NRGBA
		src      color.NRGBA
		want     color.NRGBA
	}{
		{"source-over", SourceOver, black, red, red},
		{"lighter", Lighter,
			color.NRGBA{R: 100, A: 255}, color.NRGBA{R: 100, G: 50, A: 255},
			color.NRGBA{R: 200, G: 50, A: 255}},
		{"lighter-saturates", Lighter,
			color.NRGBA{R: 200, A: 255}, color.NRGBA{R: 200, A: 255},
			color.NRGBA{R: 255, A: 255}},
		{"overlay-dark", Overlay,
			color.NRGBA{R: 64, G: 64, B: 64, A: 255}, white,
			color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{"overlay-light", Overlay,
			color.NRGBA{R: 192, G: 192, B: 192, A: 255}, black,
			color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{"overlay-transparent-backdrop", Overlay,
			color.NRGBA{}, red, red},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(2, 2)
			c.FillRect(Rect{W: 2, H: 2}, tc.backdrop)
			c.SetComposite(tc.mode)
			c.FillRect(Rect{W: 2, H: 2}, tc.src)
			assertPixel(t, c, 1, 1, tc.want)
		})
	}
}

func TestGlobalAlpha(t *testing.T) {
	c := NewCanvas(2, 2)
	c.FillRect(Rect{W: 2, H: 2}, black)
	c.SetAlpha(0.5)
	c.FillRect(Rect{W: 2, H: 2}, white)
	assertPixel(t, c, 0, 0, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	c.SetAlpha(7)
	c.FillRect(Rect{W: 2, H: 2}, black)
	assertPixel(t, c, 0, 0, black)
}

func TestClipToCircle(t *testing.T) {
	c := NewCanvas(20, 20)
	c.ClipToCircle(10, 10, 5)
	c.FillRect(Rect{W: 20, H: 20}, red)

	assertPixel(t, c, 10, 10, red)
	assertPixel(t, c, 0, 0, color.NRGBA{})
	assertPixel(t, c, 19, 19, color.NRGBA{})
	assertPixel(t, c, 10, 2, color.NRGBA{})

	// nested clips intersect
	c.ClipToCircle(16, 10, 2)
	c.FillRect(Rect{W: 20, H: 20}, white)
	assertPixel(t, c, 10, 10, red)

	c.ResetClip()
	c.FillRect(Rect{W: 20, H: 20}, white)
	assertPixel(t, c, 0, 0, white)
}

func TestClearRect(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillRect(Rect{W: 4, H: 4}, red)
	c.SetComposite(Lighter)
	c.SetAlpha(0.1)
	c.ClearRect(Rect{W: 2, H: 4})

	assertPixel(t, c, 0, 0, color.NRGBA{})
	assertPixel(t, c, 3, 0, red)
}

func TestDrawImageRegion(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, red)
	src.SetNRGBA(1, 0, white)
	src.SetNRGBA(0, 1, black)
	src.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 255})

	c := NewCanvas(6, 6)
	c.DrawImageRegion(src, src.Bounds(), Rect{X: 1, Y: 1, W: 4, H: 4}, false)

	assertPixel(t, c, 1, 1, red)
	assertPixel(t, c, 4, 1, white)
	assertPixel(t, c, 1, 4, black)
	assertPixel(t, c, 4, 4, color.NRGBA{B: 255, A: 255})
	assertPixel(t, c, 0, 0, color.NRGBA{})
	assertPixel(t, c, 5, 5, color.NRGBA{})

	// sub-region
	c = NewCanvas(2, 2)
	c.DrawImageRegion(src, image.Rect(1, 0, 2, 1), Rect{W: 2, H: 2}, true)
	assertPixel(t, c, 0, 1, white)
}

func TestMaskRecording(t *testing.T) {
	c := NewCanvas(16, 16)
	assert.Nil(t, c.EndMask(), "no recording in progress")

	c.BeginMask(image.Rect(-4, -4, 12, 12))
	c.FillCircle(8, 8, 4, red)
	mask := c.EndMask()
	c.FillRect(Rect{W: 2, H: 2}, red)

	require.NotNil(t, mask)
	assert.Equal(t, image.Rect(0, 0, 12, 12), mask.Rect, "mask is clipped to the canvas")
	assert.Equal(t, uint8(255), mask.AlphaAt(8, 8).A)
	assert.Zero(t, mask.AlphaAt(1, 1).A, "painting after EndMask must not be recorded")
	assert.Zero(t, mask.AlphaAt(13, 8).A, "outside the mask rectangle")

	grey := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	layer := image.NewNRGBA(c.Bounds())
	for y := range 16 {
		for x := range 16 {
			layer.SetNRGBA(x, y, grey)
		}
	}
	c.DrawMasked(layer, mask)
	assertPixel(t, c, 8, 8, grey)
	assertPixel(t, c, 0, 15, color.NRGBA{})
	assertPixel(t, c, 1, 1, red)

	before := slices.Clone(c.Image().Pix)
	c.DrawMasked(layer, nil)
	assert.Equal(t, before, c.Image().Pix, "a nil mask draws nothing")
}

func TestStrokeLines(t *testing.T) {
	c := NewCanvas(20, 20)
	c.StrokeLines([]raster.Segment{
		{A: vec.Vec2{X: 4, Y: 10}, B: vec.Vec2{X: 16, Y: 10}},
		{A: vec.Vec2{X: 10, Y: 4}, B: vec.Vec2{X: 10, Y: 16}},
	}, 2, graphics.LineCapRound, white)

	require.Equal(t, image.Rect(0, 0, 20, 20), c.Bounds())
	assertPixel(t, c, 10, 10, white)
	assertPixel(t, c, 10, 5, white)
	assertPixel(t, c, 5, 5, color.NRGBA{})
}

func TestCompositeModeString(t *testing.T) {
	assert.Equal(t, "lighter", Lighter.String())
	assert.Equal(t, "CompositeMode(9)", CompositeMode(9).String())
}
