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
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/dotmatrix/raster"
)

// canvasFlatness is the curve tolerance used for all shapes on a Canvas.
// Dots can be only a few pixels wide, so this is tighter than the
// rasteriser default.
const canvasFlatness = 0.05

// Canvas is a software Surface drawing into an *image.NRGBA.
//
// Pixels are stored non-premultiplied, blending is done in float64.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img   *image.NRGBA
	r     *raster.Rasteriser
	mode  CompositeMode
	alpha float64
	clip  *raster.Mask
	trace *raster.Mask
}

var _ Surface = (*Canvas)(nil)

// NewCanvas allocates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return Wrap(image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))))
}

// Wrap returns a Canvas drawing into img.
func Wrap(img *image.NRGBA) *Canvas {
	r := raster.NewRasteriser(raster.ClipRect(img.Rect))
	r.Flatness = canvasFlatness
	return &Canvas{
		img:   img,
		r:     r,
		alpha: 1,
	}
}

// Image returns the underlying image.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Bounds implements Surface.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// SetComposite implements Surface.
func (c *Canvas) SetComposite(m CompositeMode) {
	c.mode = m
}

// SetAlpha implements Surface.
func (c *Canvas) SetAlpha(a float64) {
	c.alpha = min(max(a, 0), 1)
}

// BeginMask implements Surface.
func (c *Canvas) BeginMask(r image.Rectangle) {
	c.trace = raster.NewMask(r.Intersect(c.img.Rect))
}

// EndMask implements Surface.
func (c *Canvas) EndMask() *image.Alpha {
	m := c.trace
	c.trace = nil
	if m == nil {
		return nil
	}
	return m.Alpha()
}

// ClipToCircle implements Surface.
func (c *Canvas) ClipToCircle(cx, cy, radius float64) {
	box := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)))
	if c.clip != nil {
		box = box.Intersect(c.clip.Rect)
	}
	box = box.Intersect(c.img.Rect)

	var m *raster.Mask
	if radius > 0 && !box.Empty() {
		m = c.r.FillMask(raster.Circle(cx, cy, radius), box)
	} else {
		m = raster.NewMask(image.Rectangle{})
	}
	if c.clip != nil {
		for y := box.Min.Y; y < box.Max.Y; y++ {
			for x := box.Min.X; x < box.Max.X; x++ {
				i := (y-box.Min.Y)*box.Dx() + (x - box.Min.X)
				m.Cov[i] *= c.clip.At(x, y)
			}
		}
	}
	c.clip = m
	c.r.Clip = raster.ClipRect(m.Rect)
}

// ResetClip implements Surface.
func (c *Canvas) ResetClip() {
	c.clip = nil
	c.r.Clip = raster.ClipRect(c.img.Rect)
}

// FillRect implements Surface.
func (c *Canvas) FillRect(r Rect, col color.Color) {
	if r.IsEmpty() {
		return
	}
	src := toFloat(col)
	c.r.FillNonZero(raster.Rectangle(r.X, r.Y, r.W, r.H), func(y, xMin int, cov []float32) {
		for i, v := range cov {
			c.paint(xMin+i, y, float64(v), src)
		}
	})
}

// FillCircle implements Surface.
func (c *Canvas) FillCircle(cx, cy, radius float64, col color.Color) {
	if radius <= 0 {
		return
	}
	src := toFloat(col)
	c.r.FillNonZero(raster.Circle(cx, cy, radius), func(y, xMin int, cov []float32) {
		for i, v := range cov {
			c.paint(xMin+i, y, float64(v), src)
		}
	})
}

// StrokeLines strokes straight segments with the given width and cap
// style.  Overlapping segments are painted once.
func (c *Canvas) StrokeLines(segs []raster.Segment, width float64, capStyle graphics.LineCapStyle, col color.Color) {
	src := toFloat(col)
	c.r.StrokeLines(segs, width, capStyle, func(y, xMin int, cov []float32) {
		for i, v := range cov {
			c.paint(xMin+i, y, float64(v), src)
		}
	})
}

// ClearRect implements Surface.
func (c *Canvas) ClearRect(r Rect) {
	if r.IsEmpty() {
		return
	}
	c.r.FillNonZero(raster.Rectangle(r.X, r.Y, r.W, r.H), func(y, xMin int, cov []float32) {
		for i, v := range cov {
			x := xMin + i
			k := float64(v)
			if c.clip != nil {
				k *= float64(c.clip.At(x, y))
			}
			if k <= 0 {
				continue
			}
			p := c.img.Pix[c.img.PixOffset(x, y):]
			a := float64(p[3]) / 255 * (1 - k)
			if a <= 0.5/255 {
				p[0], p[1], p[2], p[3] = 0, 0, 0, 0
				continue
			}
			p[3] = to8(a)
		}
	})
}

// DrawImageRegion implements Surface.
//
// The region is first resampled to the integer pixel box around dst with
// golang.org/x/image/draw, then composited with the anti-aliased
// coverage of dst.
func (c *Canvas) DrawImageRegion(src image.Image, sr image.Rectangle, dst Rect, smooth bool) {
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() || dst.IsEmpty() {
		return
	}
	box := image.Rect(
		int(math.Floor(dst.X)), int(math.Floor(dst.Y)),
		int(math.Ceil(dst.X+dst.W)), int(math.Ceil(dst.Y+dst.H)))
	if box.Intersect(c.img.Rect).Empty() {
		return
	}

	tmp := image.NewNRGBA(box)
	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(tmp, box, src, sr, draw.Src, nil)

	c.r.FillNonZero(raster.Rectangle(dst.X, dst.Y, dst.W, dst.H), func(y, xMin int, cov []float32) {
		for i, v := range cov {
			x := xMin + i
			if !(image.Point{X: x, Y: y}).In(box) {
				continue
			}
			c.paint(x, y, float64(v), fromNRGBA(tmp.NRGBAAt(x, y)))
		}
	})
}

// DrawMasked implements Surface.
func (c *Canvas) DrawMasked(src image.Image, mask *image.Alpha) {
	if mask == nil {
		return
	}
	area := c.img.Rect.Intersect(src.Bounds()).Intersect(mask.Rect)
	nrgba, _ := src.(*image.NRGBA)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			a := mask.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			var s rgba
			if nrgba != nil {
				s = fromNRGBA(nrgba.NRGBAAt(x, y))
			} else {
				s = toFloat(src.At(x, y))
			}
			c.paint(x, y, float64(a)/255, s)
		}
	}
}

// paint blends one source pixel with coverage k into the canvas.
func (c *Canvas) paint(x, y int, k float64, s rgba) {
	if c.clip != nil {
		k *= float64(c.clip.At(x, y))
	}
	if c.trace != nil && k > 0 {
		if (image.Point{X: x, Y: y}).In(c.trace.Rect) {
			i := (y-c.trace.Rect.Min.Y)*c.trace.Rect.Dx() + (x - c.trace.Rect.Min.X)
			c.trace.Cov[i] = max(c.trace.Cov[i], float32(k))
		}
	}
	a := s.a * k * c.alpha
	if a <= 0 {
		return
	}
	p := c.img.Pix[c.img.PixOffset(x, y):]
	d := rgba{
		r: float64(p[0]) / 255,
		g: float64(p[1]) / 255,
		b: float64(p[2]) / 255,
		a: float64(p[3]) / 255,
	}
	o := blend(c.mode, s, a, d)
	p[0], p[1], p[2], p[3] = to8(o.r), to8(o.g), to8(o.b), to8(o.a)
}

// rgba is a non-premultiplied colour with components in [0, 1].
type rgba struct {
	r, g, b, a float64
}

func toFloat(col color.Color) rgba {
	return fromNRGBA(color.NRGBAModel.Convert(col).(color.NRGBA))
}

func fromNRGBA(n color.NRGBA) rgba {
	return rgba{
		r: float64(n.R) / 255,
		g: float64(n.G) / 255,
		b: float64(n.B) / 255,
		a: float64(n.A) / 255,
	}
}

func to8(v float64) uint8 {
	return uint8(min(max(v*255+0.5, 0), 255))
}
