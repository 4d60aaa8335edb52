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

package testcases

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Flat returns an image filled with a single colour.
func Flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// HueRamp returns a horizontal rainbow which darkens towards the bottom.
func HueRamp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		v := 1 - 0.8*float64(y)/float64(max(h-1, 1))
		for x := range w {
			hue := 360 * float64(x) / float64(w)
			r, g, b := colorful.Hsv(hue, 0.9, v).Clamped().RGB255()
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Spot returns a bright disc on a dark background, with a soft edge.
func Spot(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	r := 0.4 * float64(min(w, h))
	for y := range h {
		for x := range w {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			t := min(max((r-d)/(0.25*r), 0), 1)
			v := uint8(math.Round(20 + 230*t))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// Cutout returns a coloured disc on a fully transparent background.
func Cutout(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	r := 0.35 * float64(min(w, h))
	for y := range h {
		for x := range w {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// Blocks returns a grid of n × n colour blocks from a fixed palette.
func Blocks(w, h, n int) *image.NRGBA {
	palette := []color.NRGBA{
		{R: 0xD6, G: 0x28, B: 0x28, A: 255},
		{R: 0xF7, G: 0x7F, B: 0x00, A: 255},
		{R: 0xFC, G: 0xBF, B: 0x49, A: 255},
		{R: 0x00, G: 0x30, B: 0x49, A: 255},
		{R: 0xEA, G: 0xE2, B: 0xB7, A: 255},
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		by := y * n / h
		for x := range w {
			bx := x * n / w
			img.SetNRGBA(x, y, palette[(bx*3+by*2)%len(palette)])
		}
	}
	return img
}

// Noise returns an image of uniformly random colours.
func Noise(w, h int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(rng.IntN(256))
		img.Pix[i+1] = uint8(rng.IntN(256))
		img.Pix[i+2] = uint8(rng.IntN(256))
		img.Pix[i+3] = 255
	}
	return img
}
