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
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/dotmatrix/surface"
	"seehuhn.de/go/dotmatrix/tone"
)

func flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func render(t *testing.T, src image.Image, s Settings, w, h int) *image.NRGBA {
	t.Helper()
	img, err := RenderImage(src, s, image.Point{X: w, Y: h})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, w, h), img.Rect)
	return img
}

func assertNear(t *testing.T, want, got color.NRGBA, tol int) {
	t.Helper()
	d := func(a, b uint8) int { return max(int(a)-int(b), int(b)-int(a)) }
	if d(want.R, got.R) > tol || d(want.G, got.G) > tol || d(want.B, got.B) > tol || d(want.A, got.A) > tol {
		t.Errorf("got %v, want %v (±%d)", got, want, tol)
	}
}

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestRenderErrors(t *testing.T) {
	c := surface.NewCanvas(10, 10)
	s := DefaultSettings(Wallpaper)

	assert.ErrorIs(t, Render(nil, flat(4, 4, red), s), ErrNoSurface)
	assert.ErrorIs(t, Render(c, nil, s), ErrNoImage)
	for _, v := range c.Image().Pix {
		require.Zero(t, v, "surface must stay untouched")
	}

	_, err := RenderImage(nil, s, image.Point{X: 5, Y: 5})
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestEmptySourceBackgroundOnly(t *testing.T) {
	empty := image.NewNRGBA(image.Rectangle{})
	for _, v := range Variants {
		img := render(t, empty, DefaultSettings(v), 30, 20)
		for y := range 20 {
			for x := range 30 {
				require.Equal(t, darkColor, img.NRGBAAt(x, y), "%s (%d,%d)", v, x, y)
			}
		}
	}
}

func TestZeroSizeSurface(t *testing.T) {
	img := render(t, flat(8, 8, red), DefaultSettings(GlassDots), 0, 0)
	assert.Empty(t, img.Pix)
}

func TestBackgrounds(t *testing.T) {
	blank := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	tests := []struct {
		background string
		cmyk       bool
		want       color.NRGBA
	}{
		{BackgroundDark, false, darkColor},
		{BackgroundLight, false, lightColor},
		{BackgroundTransparent, false, color.NRGBA{}},
		{"#ff0000", false, red},
		{"#336699", true, tone.SimulatePrint(color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255})},
		{"chartreuse-ish", false, darkColor},
	}
	for _, tc := range tests {
		s := DefaultSettings(Wallpaper)
		s.Background = tc.background
		s.CMYK = tc.cmyk
		img := render(t, blank, s, 12, 12)
		assert.Equal(t, tc.want, img.NRGBAAt(6, 6), "background %q", tc.background)
	}

	s := DefaultSettings(Wallpaper)
	s.IsTransparent = true
	s.Background = BackgroundLight
	img := render(t, blank, s, 12, 12)
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(3, 3))
}

func TestEasterEgg(t *testing.T) {
	blank := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	s := DefaultSettings(Wallpaper)
	s.EasterEgg = 1
	img := render(t, blank, s, 40, 40)
	for band := range 4 {
		assert.Equal(t, eggColors[eggOrders[0][band]], img.NRGBAAt(20, band*10+5))
	}

	s.EasterEgg = 7
	again := render(t, blank, s, 40, 40)
	assert.Equal(t, img.Pix, again.Pix, "selection wraps around")

	s.EasterEgg = 2
	other := render(t, blank, s, 40, 40)
	assert.Equal(t, eggColors[eggOrders[1][0]], other.NRGBAAt(20, 5))
}

func TestWallpaperDots(t *testing.T) {
	s := DefaultSettings(Wallpaper)
	s.Resolution = 0 // 24 columns on a landscape canvas

	img := render(t, flat(100, 100, red), s, 200, 200)
	assert.Equal(t, red, img.NRGBAAt(4, 4), "dot centre")
	assert.Equal(t, darkColor, img.NRGBAAt(0, 0), "gap between dots")

	s.IsMonochrome = true
	img = render(t, flat(100, 100, red), s, 200, 200)
	grey := color.NRGBA{R: 76, G: 76, B: 76, A: 255}
	assert.Equal(t, grey, img.NRGBAAt(4, 4))

	s.LowerLimit = 50
	img = render(t, flat(100, 100, red), s, 200, 200)
	assert.Equal(t, darkColor, img.NRGBAAt(4, 4), "dark dots below the lower limit")

	s = DefaultSettings(Wallpaper)
	s.Resolution = 0
	s.IsCircular = false
	img = render(t, flat(100, 100, red), s, 200, 200)
	assert.Equal(t, red, img.NRGBAAt(1, 1), "square dots fill the corners")
}

func TestPaletteReproducible(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	src := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	for i := range src.Pix {
		src.Pix[i] = uint8(rng.IntN(256))
		if i%4 == 3 {
			src.Pix[i] = 255
		}
	}

	for _, v := range []Variant{Wallpaper, PhotoWidget} {
		s := DefaultSettings(v)
		s.PaletteSize = 4
		first := render(t, src, s, 120, 120)
		second := render(t, src, s, 120, 120)
		assert.Equal(t, first.Pix, second.Pix, "%s", v)
	}
}

func TestTransparentCellsAreNotDrawn(t *testing.T) {
	src := flat(20, 20, red)
	for y := range 20 {
		for x := range 10 {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 8})
		}
	}
	s := DefaultSettings(PhotoWidget)
	s.Resolution = 0 // 8 columns
	img := render(t, src, s, 80, 80)
	assert.Equal(t, darkColor, img.NRGBAAt(15, 35), "null cell")
	assert.Equal(t, red, img.NRGBAAt(65, 35))
}

func TestValueAliasing(t *testing.T) {
	src := flat(64, 64, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := range 64 {
		for x := 32; x < 64; x++ {
			src.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	s := DefaultSettings(ValueAliasing)
	s.Resolution = 0 // 16 columns

	img := render(t, src, s, 160, 160)
	assert.Equal(t, lightColor, img.NRGBAAt(5, 5), "bright cell, full dot")
	assert.Equal(t, darkColor, img.NRGBAAt(155, 5), "black cell, no dot")

	s.Background = BackgroundLight
	img = render(t, src, s, 160, 160)
	assert.Equal(t, lightColor, img.NRGBAAt(5, 5), "bright cell on light background")
	assert.Equal(t, darkColor, img.NRGBAAt(155, 5), "dark cell, full dot")

	grey := flat(32, 32, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	s = DefaultSettings(ValueAliasing)
	s.Resolution = 0
	s.IsPureValue = true
	img = render(t, grey, s, 160, 160)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img.NRGBAAt(5, 5))
}

func TestValueDotArea(t *testing.T) {
	// a quarter-bright cell gets a dot of half the width
	s := DefaultSettings(ValueAliasing)
	s.Resolution = 0

	rowInk := func(v uint8) float64 {
		src := flat(16, 16, color.NRGBA{R: v, G: v, B: v, A: 255})
		img := render(t, src, s, 160, 160)
		sum := 0.0
		for x := range 10 {
			sum += float64(img.NRGBAAt(x, 5).R) / 255
		}
		return sum
	}
	full := rowInk(255)
	quarter := rowInk(64)
	require.Greater(t, full, 9.0)
	assert.InDelta(t, 0.5, quarter/full, 0.05)
}

func TestGlyphMirror(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	s := DefaultSettings(GlyphMirror)
	s.Resolution = 0 // diameter 9
	s.GlowStrength = 0
	s.LowerLimit = 0

	img := render(t, flat(50, 50, white), s, 90, 90)
	assert.Equal(t, white, img.NRGBAAt(45, 45), "centre cell")
	assert.Equal(t, darkColor, img.NRGBAAt(5, 5), "corner outside the circle")

	s.IsCircular = false
	img = render(t, flat(50, 50, white), s, 90, 90)
	assert.Equal(t, white, img.NRGBAAt(5, 5), "square framing")

	// the glyph is centred in wide canvases
	img = render(t, flat(50, 50, white), s, 130, 90)
	assert.Equal(t, darkColor, img.NRGBAAt(10, 45))
	assert.Equal(t, white, img.NRGBAAt(65, 45))
}

func TestGlyphGlow(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	s := DefaultSettings(GlyphMirror)
	s.Resolution = 0
	s.IsCircular = false
	s.LowerLimit = 0

	s.GlowStrength = 0
	img := render(t, flat(50, 50, white), s, 90, 90)
	assert.Zero(t, img.NRGBAAt(50, 50).R, "gap between four dots")

	s.GlowStrength = 100
	img = render(t, flat(50, 50, white), s, 90, 90)
	assert.Greater(t, img.NRGBAAt(50, 50).R, uint8(0), "glow fills the gap")
}

func TestGlassDots(t *testing.T) {
	s := DefaultSettings(GlassDots)
	s.Resolution = 0 // 10 columns
	s.SimilaritySensitivity = 100

	img := render(t, flat(100, 100, blue), s, 100, 100)
	assertNear(t, blue, img.NRGBAAt(50, 50), 3)
	assert.Equal(t, darkColor, img.NRGBAAt(0, 0), "outside the lens")

	again := render(t, flat(100, 100, blue), s, 100, 100)
	assert.Equal(t, img.Pix, again.Pix, "rendering is deterministic")
}

func TestGlassBackgroundBlur(t *testing.T) {
	s := DefaultSettings(GlassDots)
	s.Resolution = 0
	s.SimilaritySensitivity = 100
	s.IsBackgroundBlurEnabled = true
	s.IsGrainEnabled = false

	img := render(t, flat(100, 100, blue), s, 100, 100)
	assertNear(t, blue, img.NRGBAAt(2, 2), 3)
}

// ramp returns an image whose red channel rises from 0 at the left edge
// to 255 at the right edge.
func ramp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			r := uint8(math.Round(float64(x) * 255 / float64(w-1)))
			img.SetNRGBA(x, y, color.NRGBA{R: r, A: 255})
		}
	}
	return img
}

func TestGlassRefraction(t *testing.T) {
	s := DefaultSettings(GlassDots)
	s.Resolution = 0 // a single 10×10 blob
	s.SimilaritySensitivity = 100
	s.IsMarkerEnabled = false
	s.IsGrainEnabled = false
	s.BlurAmount = 0

	// spread returns the red difference between two lens pixels 50
	// canvas pixels apart.
	spread := func(ior float64) float64 {
		s.IOR = ior
		img := render(t, ramp(100, 100), s, 100, 100)
		left, right := img.NRGBAAt(25, 50), img.NRGBAAt(75, 50)
		return float64(right.R) - float64(left.R)
	}

	s.IOR = 0
	img := render(t, ramp(100, 100), s, 100, 100)
	left, right := img.NRGBAAt(5, 50), img.NRGBAAt(95, 50)
	assert.Less(t, left.R, uint8(40), "left lens edge")
	assert.Greater(t, right.R, uint8(215), "right lens edge")
	assert.Equal(t, darkColor, img.NRGBAAt(0, 0), "outside the lens")

	flatSpread := spread(0)
	assert.InDelta(t, 50*255/99.0, flatSpread, 4)
	assert.InDelta(t, Magnification(100), spread(100)/flatSpread, 0.05)
}

func TestGlassMarkers(t *testing.T) {
	s := DefaultSettings(GlassDots)
	s.Resolution = 0
	s.SimilaritySensitivity = 100
	s.IsGrainEnabled = false
	s.IsMarkerEnabled = true

	// (50, 50) is the centre of the plus, (35, 35) lies inside the lens
	// but off the plus.
	bright := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	img := render(t, flat(100, 100, bright), s, 100, 100)
	assert.Less(t, img.NRGBAAt(50, 50).R, uint8(170), "dark plus on a bright blob")
	assert.Less(t, img.NRGBAAt(50, 65).R, uint8(170), "vertical bar")
	assertNear(t, bright, img.NRGBAAt(35, 35), 3)

	dark := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	img = render(t, flat(100, 100, dark), s, 100, 100)
	assert.Greater(t, img.NRGBAAt(50, 50).R, uint8(65), "light plus on a dark blob")
	assert.Greater(t, img.NRGBAAt(65, 50).R, uint8(65), "horizontal bar")
	assertNear(t, dark, img.NRGBAAt(35, 35), 3)

	s.IsMarkerEnabled = false
	img = render(t, flat(100, 100, dark), s, 100, 100)
	assertNear(t, dark, img.NRGBAAt(50, 50), 3)
}

func TestGlassGrainMask(t *testing.T) {
	s := DefaultSettings(GlassDots)
	s.Resolution = 0
	s.SimilaritySensitivity = 100
	s.IsMarkerEnabled = false
	s.IsBackgroundBlurEnabled = false
	s.Background = "#808080"
	s.GrainAmount = 100
	s.GrainSize = 0

	src := flat(100, 100, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	s.IsGrainEnabled = false
	plain := render(t, src, s, 100, 100)
	s.IsGrainEnabled = true
	grainy := render(t, src, s, 100, 100)

	grey := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	for _, pt := range []image.Point{{0, 0}, {99, 0}, {0, 99}, {99, 99}, {3, 3}} {
		assert.Equal(t, grey, grainy.NRGBAAt(pt.X, pt.Y), "background at %v", pt)
	}

	changed := 0
	for y := 30; y < 70; y++ {
		for x := 30; x < 70; x++ {
			if plain.NRGBAAt(x, y) != grainy.NRGBAAt(x, y) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 400, "grain covers the dot")
}

func TestGlassGeometry(t *testing.T) {
	assert.Equal(t, 1.0, Magnification(0))
	assert.InDelta(t, 1.372, Magnification(100), 1e-12)
	assert.Equal(t, 10, BleedSize(100, Magnification(50)))
	assert.Zero(t, BleedSize(0, 2))
	assert.Zero(t, BleedSize(100, 1))

	assert.Equal(t, 1.0, GrainCell(0))
	assert.Equal(t, 8.0, GrainCell(100))
	assert.Equal(t, 8.0, GrainCell(500))
}

func TestGrainImage(t *testing.T) {
	r := image.Rect(0, 0, 64, 48)
	a := grainImage(r, 3, 7)
	b := grainImage(r, 3, 7)
	c := grainImage(r, 3, 8)
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)

	sum := 0
	for _, v := range a.Pix {
		sum += int(v)
	}
	assert.InDelta(t, 128, float64(sum)/float64(len(a.Pix)), 4)

	// pixels within one grain cell agree
	assert.Equal(t, a.GrayAt(0, 0), a.GrayAt(2, 2))
}

func TestClampingMatchesBoundary(t *testing.T) {
	src := flat(40, 30, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	for _, v := range Variants {
		lo := DefaultSettings(v)
		hi := lo
		lo.Resolution, hi.Resolution = 100, 180
		lo.Exposure, hi.Exposure = 0, -40
		lo.CropOffsetX, hi.CropOffsetX = 1, 7

		a := render(t, src, lo, 60, 40)
		b := render(t, src, hi, 60, 40)
		assert.Equal(t, a.Pix, b.Pix, "variant %s", v)
	}
}

func TestPerformanceWarning(t *testing.T) {
	buf := &bytes.Buffer{}
	r := &Renderer{Logger: slog.New(slog.NewTextHandler(buf, nil))}

	s := DefaultSettings(Wallpaper)
	s.Resolution = 100 // 120 × 100 cells
	_, err := r.RenderImage(flat(60, 50, red), s, image.Point{X: 240, Y: 200})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "render pass is slow")

	buf.Reset()
	s.Resolution = 0
	_, err = r.RenderImage(flat(60, 50, red), s, image.Point{X: 240, Y: 200})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "render pass is slow")
}

func TestExport(t *testing.T) {
	s := DefaultSettings(GlassDots)
	data := <-Export(context.Background(), flat(30, 30, red), s, image.Point{X: 40, Y: 30})
	require.NotNil(t, data)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Renderer{Logger: slog.New(slog.DiscardHandler)}
	assert.Nil(t, <-r.Export(ctx, flat(30, 30, red), s, image.Point{X: 40, Y: 30}))
	assert.Nil(t, <-r.Export(context.Background(), nil, s, image.Point{X: 40, Y: 30}))
	assert.Nil(t, <-r.Export(context.Background(), flat(3, 3, red), s, image.Point{}))
}

func TestExportFreezesSettings(t *testing.T) {
	s := DefaultSettings(Wallpaper)
	s.Background = BackgroundLight
	ch := Export(context.Background(), flat(10, 10, red), s, image.Point{X: 20, Y: 20})
	s.Background = BackgroundDark

	data := <-ch
	require.NotNil(t, data)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}
