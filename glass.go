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
	"image"
	"math"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"

	"seehuhn.de/go/dotmatrix/blob"
	"seehuhn.de/go/dotmatrix/coverage"
	"seehuhn.de/go/dotmatrix/surface"
)

// Magnification returns the lens factor of a glass dot for an IOR slider
// value in [0, 100].
func Magnification(ior float64) float64 {
	return 1 + ior*0.93/100*0.4
}

// BleedSize returns the margin, in pixels, which the refraction source
// needs around the canvas.  maxBlobPx is the pixel width of the largest
// blob the grid could hold.
func BleedSize(maxBlobPx, magnification float64) int {
	if maxBlobPx <= 0 || magnification <= 1 {
		return 0
	}
	return int(math.Ceil(maxBlobPx / 2 * (magnification - 1)))
}

// blurSigma returns the Gaussian blur radius of the bleed copy for a
// grid unit of the given pixel size.
func blurSigma(blurAmount, unit float64) float32 {
	return float32(blurAmount / 100 * unit / 4)
}

// lens is the geometry of one glass dot in canvas pixels.
type lens struct {
	cx, cy, r float64
}

// glass renders the GlassDots pipeline.  Similar cells are merged into
// blobs, and every blob shows a magnified part of a blurred copy of the
// image through a circular clip.
func (p *pass) glass() {
	g, crop := p.sample(GlassGrid, p.bounds)
	if g.IsEmpty() {
		return
	}
	lv := p.s.Levels()
	g = g.Map(lv.Color)

	res := blob.Detect(g, blob.Options{
		Sensitivity: p.s.SimilaritySensitivity,
		PixelGap:    p.s.PixelGap,
		Markers:     p.s.IsMarkerEnabled,
	})
	p.blobs = len(res.Blobs)

	w, h := p.bounds.Dx(), p.bounds.Dy()
	cw := float64(w) / float64(g.Cols)
	ch := float64(h) / float64(g.Rows)
	unit := min(cw, ch)
	mag := Magnification(p.s.IOR)
	bleed := BleedSize(float64(min(g.Cols, g.Rows))*unit, mag)

	src := p.bleedImage(crop.Source, bleed, blurSigma(p.s.BlurAmount, unit))
	if p.s.IsBackgroundBlurEnabled {
		inner := image.Rect(bleed, bleed, bleed+w, bleed+h)
		p.dst.DrawImageRegion(src, inner, surface.RectOf(p.bounds), true)
	}

	// Without a blurred background the grain only covers the dots.
	masked := p.s.IsGrainEnabled && !p.s.IsBackgroundBlurEnabled
	if masked {
		p.dst.BeginMask(p.bounds)
	}

	place := func(b blob.Blob) lens {
		x, y := b.Center()
		return lens{
			cx: float64(p.bounds.Min.X) + x*cw,
			cy: float64(p.bounds.Min.Y) + y*ch,
			r:  b.Radius(res.GapFraction) * unit,
		}
	}
	visible := res.Visible(p.s.LowerLimit)
	for _, b := range visible {
		l := place(b)
		if !coverage.Drawable(2*l.r, 2*l.r) {
			continue
		}
		// lens centre in the coordinates of the bleed image
		sx := l.cx - float64(p.bounds.Min.X) + float64(bleed)
		sy := l.cy - float64(p.bounds.Min.Y) + float64(bleed)
		half := l.r * mag
		sr := image.Rect(
			int(math.Round(sx-half)), int(math.Round(sy-half)),
			int(math.Round(sx+half)), int(math.Round(sy+half)))

		p.dst.ClipToCircle(l.cx, l.cy, l.r)
		p.dst.DrawImageRegion(src, sr, surface.Rect{X: l.cx - l.r, Y: l.cy - l.r, W: 2 * l.r, H: 2 * l.r}, true)
		p.dst.ResetClip()
	}
	var shapes *image.Alpha
	if masked {
		shapes = p.dst.EndMask()
	}

	if p.s.IsMarkerEnabled {
		p.markers(visible, g, place)
	}
	if p.s.IsGrainEnabled {
		p.grain(shapes)
	}
}

// bleedImage returns the source region sr scaled to the canvas size,
// with a margin of bleed pixels on every side, colour adjusted and
// blurred.  Pixel (bleed, bleed) of the result corresponds to the
// top-left corner of the canvas.  Parts of the margin outside the
// source image stay transparent.
func (p *pass) bleedImage(sr image.Rectangle, bleed int, sigma float32) *image.NRGBA {
	w, h := p.bounds.Dx(), p.bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w+2*bleed, h+2*bleed))
	if sr.Empty() {
		return out
	}

	// source pixels per canvas pixel
	kx := float64(sr.Dx()) / float64(w)
	ky := float64(sr.Dy()) / float64(h)
	b := float64(bleed)
	wide := image.Rect(
		int(math.Floor(float64(sr.Min.X)-b*kx)), int(math.Floor(float64(sr.Min.Y)-b*ky)),
		int(math.Ceil(float64(sr.Max.X)+b*kx)), int(math.Ceil(float64(sr.Max.Y)+b*ky)),
	).Intersect(p.src.Bounds())
	dr := image.Rect(
		int(math.Round(float64(wide.Min.X-sr.Min.X)/kx+b)),
		int(math.Round(float64(wide.Min.Y-sr.Min.Y)/ky+b)),
		int(math.Round(float64(wide.Max.X-sr.Min.X)/kx+b)),
		int(math.Round(float64(wide.Max.Y-sr.Min.Y)/ky+b)),
	).Intersect(out.Rect)
	if dr.Empty() {
		return out
	}
	draw.ApproxBiLinear.Scale(out, dr, p.src, wide, draw.Src, nil)

	if lv := p.s.Levels(); !lv.IsNeutral() || p.s.CMYK {
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				c := out.NRGBAAt(x, y)
				if c.A == 0 {
					continue
				}
				out.SetNRGBA(x, y, p.color(c))
			}
		}
	}

	if sigma <= 0 {
		return out
	}
	blur := gift.New(gift.GaussianBlur(sigma))
	blurred := image.NewNRGBA(blur.Bounds(out.Rect))
	blur.Draw(blurred, out)
	return blurred
}
