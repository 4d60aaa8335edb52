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

package raster

import (
	"image"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for approximating a quarter circle
// by a cubic Bézier curve.
const kappa = 0.5522847498

// Circle returns a closed path approximating the circle with centre
// (cx, cy) and radius r, using four cubic arcs.
func Circle(cx, cy, r float64) path.Path {
	k := kappa * r
	return Shape{
		{path.CmdMoveTo, []vec.Vec2{{X: cx, Y: cy - r}}},
		{path.CmdCubeTo, []vec.Vec2{{X: cx + k, Y: cy - r}, {X: cx + r, Y: cy - k}, {X: cx + r, Y: cy}}},
		{path.CmdCubeTo, []vec.Vec2{{X: cx + r, Y: cy + k}, {X: cx + k, Y: cy + r}, {X: cx, Y: cy + r}}},
		{path.CmdCubeTo, []vec.Vec2{{X: cx - k, Y: cy + r}, {X: cx - r, Y: cy + k}, {X: cx - r, Y: cy}}},
		{path.CmdCubeTo, []vec.Vec2{{X: cx - r, Y: cy - k}, {X: cx - k, Y: cy - r}, {X: cx, Y: cy - r}}},
		{Cmd: path.CmdClose},
	}.Path()
}

// Rectangle returns the closed axis-aligned rectangle path with top-left
// corner (x, y).
func Rectangle(x, y, w, h float64) path.Path {
	return Shape{
		{path.CmdMoveTo, []vec.Vec2{{X: x, Y: y}}},
		{path.CmdLineTo, []vec.Vec2{{X: x + w, Y: y}}},
		{path.CmdLineTo, []vec.Vec2{{X: x + w, Y: y + h}}},
		{path.CmdLineTo, []vec.Vec2{{X: x, Y: y + h}}},
		{Cmd: path.CmdClose},
	}.Path()
}

// ShapeSegment is one path command of a Shape, with its points.
type ShapeSegment struct {
	Cmd path.Command
	Pts []vec.Vec2
}

// Shape is a path stored as a list of segments.
type Shape []ShapeSegment

// Path returns an iterator over the segments of s.
func (s Shape) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, seg := range s {
			if !yield(seg.Cmd, seg.Pts) {
				return
			}
		}
	}
}

// Mask is a dense coverage buffer in device pixels.
type Mask struct {
	Rect image.Rectangle
	Cov  []float32 // row-major, len = Rect.Dx()*Rect.Dy()
}

// NewMask allocates an empty mask for the given pixel rectangle.
func NewMask(r image.Rectangle) *Mask {
	return &Mask{
		Rect: r,
		Cov:  make([]float32, r.Dx()*r.Dy()),
	}
}

// At returns the coverage of pixel (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) float32 {
	if m == nil || !(image.Point{X: x, Y: y}).In(m.Rect) {
		return 0
	}
	return m.Cov[(y-m.Rect.Min.Y)*m.Rect.Dx()+(x-m.Rect.Min.X)]
}

// Union merges the coverage of one emitted row into the mask, keeping the
// larger value for every pixel.  It can be passed directly as an EmitFunc.
func (m *Mask) Union(y, xMin int, coverage []float32) {
	if y < m.Rect.Min.Y || y >= m.Rect.Max.Y {
		return
	}
	w := m.Rect.Dx()
	row := m.Cov[(y-m.Rect.Min.Y)*w : (y-m.Rect.Min.Y+1)*w]
	for i, c := range coverage {
		x := xMin + i - m.Rect.Min.X
		if x < 0 || x >= w {
			continue
		}
		if c > row[x] {
			row[x] = c
		}
	}
}

// Alpha converts the mask to an 8-bit alpha image, as used for the
// destination masks of golang.org/x/image/draw.
func (m *Mask) Alpha() *image.Alpha {
	a := image.NewAlpha(m.Rect)
	for i, c := range m.Cov {
		a.Pix[i] = uint8(min(255, int(c*255+0.5)))
	}
	return a
}

// FillMask rasterises p into a new mask covering r.
func (r *Rasteriser) FillMask(p path.Path, bounds image.Rectangle) *Mask {
	m := NewMask(bounds)
	saved := r.Clip
	r.Clip = rect.Rect{
		LLx: float64(bounds.Min.X),
		LLy: float64(bounds.Min.Y),
		URx: float64(bounds.Max.X),
		URy: float64(bounds.Max.Y),
	}
	r.FillNonZero(p, m.Union)
	r.Clip = saved
	return m
}

// ClipRect converts an image rectangle to a clip rectangle.
func ClipRect(b image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
}
