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

// Package raster computes anti-aliased pixel coverage for the shapes of a
// dot matrix: filled circles and rectangles, circular clip regions and the
// capped line segments of marker overlays.
//
// Coverage is the exact fraction of each pixel's area inside the shape,
// computed with the signed-area accumulation method.  No supersampling is
// involved, so a dot of radius 0.3px still gets the correct total ink.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// EmitFunc receives the coverage of one pixel row, starting at column xMin.
// The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yRange() (float64, float64) {
	return min(e.y0, e.y1), max(e.y0, e.y1)
}

// Rasteriser converts closed paths to pixel coverage values in [0, 1].
// A Rasteriser keeps its buffers between calls, so a single instance
// should be reused for all shapes of a render pass.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// Clip limits the output to this device rectangle.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// bufferedArea is the largest bounding box area (in pixels) for which
	// the whole box is accumulated at once.  Larger shapes are processed
	// one scanline at a time with an active edge list.
	bufferedArea int

	cover  []float32
	area   []float32
	edges  []edge
	active []int
	rowHit []bool

	outline      []vec.Vec2 // polygon vertices for line strokes
	outlineStart []int

	bboxEmpty      bool
	bbXMin, bbXMax float64
	bbYMin, bbYMax float64
}

// NewRasteriser returns a Rasteriser for the given clip rectangle.
// Paths are given in device pixels.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		Clip:         clip,
		Flatness:     defaultFlatness,
		bufferedArea: defaultBufferedArea,
	}
}

// Reset prepares the Rasteriser for a new surface, keeping the capacity
// of its internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.rowHit = r.rowHit[:0]
	r.outline = r.outline[:0]
	r.outlineStart = r.outlineStart[:0]
}

// FillNonZero computes the coverage of p under the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p path.Path, emit EmitFunc) {
	if p == nil {
		return
	}
	r.beginEdges()
	r.walkPath(p)
	r.scan(emit)
}

// scan integrates the collected edge list and emits the result.
func (r *Rasteriser) scan(emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.deviceBox()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.bufferedArea {
		r.scanBuffered(xMin, xMax, yMin, yMax, emit)
	} else {
		r.scanActive(xMin, xMax, yMin, yMax, emit)
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// walkPath flattens p into device space edges.
func (r *Rasteriser) walkPath(p path.Path) {
	var cur, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			cur = pts[0]
			start = cur
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, pts[0], pts[1])
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2])
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
}

func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	dev := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic uses Wang's formula for the number of segments.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2).Length()
	d2 := p1.Sub(p2.Mul(2)).Add(p3).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * r.Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// addEdge records a segment.  Horizontal segments do not contribute
// coverage and are dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y

	dy := by - ay
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: ax, y0: ay, x1: bx, y1: by, dxdy: (bx - ax) / dy})

	if r.bboxEmpty {
		r.bbXMin, r.bbXMax = min(ax, bx), max(ax, bx)
		r.bbYMin, r.bbYMax = min(ay, by), max(ay, by)
		r.bboxEmpty = false
		return
	}
	r.bbXMin = min(r.bbXMin, ax, bx)
	r.bbXMax = max(r.bbXMax, ax, bx)
	r.bbYMin = min(r.bbYMin, ay, by)
	r.bbYMax = max(r.bbYMax, ay, by)
}

// deviceBox returns the integer pixel box of the collected edges,
// intersected with the clip rectangle.
func (r *Rasteriser) deviceBox() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bbXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Every edge crossing a pixel deposits two quantities:
//
//	cover = ±dy            signed height of the crossing
//	area  = cover·(1-fx)   the part of the pixel right of the crossing
//
// Summing cover from the left edge of a row and adding the local area
// gives the signed winding-weighted area of the shape inside each pixel.

// accumulate adds the contribution of e to scanline y.  The buffers cover
// the columns [xLo, xHi); crossings left of xLo are folded into column 0.
func accumulate(e *edge, y int, cover, area []float32, xLo, xHi int) {
	yTop, yBot := e.yRange()
	yTop = max(yTop, float64(y))
	yBot = min(yBot, float64(y+1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	left, right := min(xa, xb), max(xa, xb)
	pl := int(math.Floor(left))
	pr := int(math.Floor(right))

	if pr < xLo {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if pl >= xHi {
		return
	}

	deposit := func(pix int, y0, y1 float64) {
		c := sign * float32(y1-y0)
		if pix < xLo {
			cover[0] += c
			area[0] += c
			return
		}
		if pix >= xHi {
			return
		}
		xm := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		i := pix - xLo
		cover[i] += c
		area[i] += c * float32(1-(xm-float64(pix)))
	}

	if pl == pr {
		deposit(pl, yTop, yBot)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pl; pix <= pr; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		s0 := max(min(ya, yb), yTop)
		s1 := min(max(ya, yb), yBot)
		if s1 > s0 {
			deposit(pix, s0, s1)
		}
	}
}

// integrate turns the accumulated cover/area of one row into coverage,
// in place in cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// emitRow integrates one row and passes the non-zero span to emit.
func emitRow(y, xMin int, cover, area []float32, emit EmitFunc) {
	integrate(cover, area)
	lo, hi := 0, len(cover)
	for lo < hi && cover[lo] == 0 {
		lo++
	}
	for hi > lo && cover[hi-1] == 0 {
		hi--
	}
	if lo < hi {
		emit(y, xMin+lo, cover[lo:hi])
	}
}

// scanBuffered accumulates all edges into a width×height buffer first.
// This is the fast path for the many small dots of a dot matrix.
func (r *Rasteriser) scanBuffered(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin
	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	clear(r.cover)
	clear(r.area)
	r.rowHit = slices.Grow(r.rowHit[:0], h)[:h]
	clear(r.rowHit)

	for i := range r.edges {
		e := &r.edges[i]
		lo, hi := e.yRange()
		y0 := max(int(math.Floor(lo)), yMin)
		y1 := min(int(math.Floor(hi))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * w
			accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.rowHit[row] = true
		}
	}

	for row := range h {
		if !r.rowHit[row] {
			continue
		}
		off := row * w
		emitRow(yMin+row, xMin, r.cover[off:off+w], r.area[off:off+w], emit)
	}
}

// scanActive processes one scanline at a time, keeping only the edges
// which intersect the current row.
func (r *Rasteriser) scanActive(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		la, _ := a.yRange()
		lb, _ := b.yRange()
		return cmp.Compare(la, lb)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bot := float64(y + 1)
		for next < len(r.edges) {
			if lo, _ := r.edges[next].yRange(); lo >= bot {
				break
			}
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if _, hi := e.yRange(); hi <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if touched {
			emitRow(y, xMin, r.cover, r.area, emit)
		}
	}
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultBufferedArea selects between the buffered and the active edge
	// list scan.
	defaultBufferedArea = 65536

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which still contributes coverage.
	horizontalEdgeThreshold = 1e-10
)
