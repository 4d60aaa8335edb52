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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Segment is a straight line from A to B in device pixels.
type Segment struct {
	A, B vec.Vec2
}

// StrokeLines strokes independent straight segments with the given line
// width and cap style.  Overlapping segments, like the two bars of a plus
// sign, are painted once.
//
// Zero-length segments only produce output for round caps (a disk) and
// square caps (an axis-aligned square).
func (r *Rasteriser) StrokeLines(segs []Segment, width float64, capStyle graphics.LineCapStyle, emit EmitFunc) {
	if width <= 0 || len(segs) == 0 {
		return
	}
	d := width / 2

	r.outline = r.outline[:0]
	r.outlineStart = r.outlineStart[:0]
	for _, s := range segs {
		delta := s.B.Sub(s.A)
		length := delta.Length()
		start := len(r.outline)
		if length < zeroLengthThreshold {
			switch capStyle {
			case graphics.LineCapRound:
				r.addArc(s.A, d, vec.Vec2{X: 1, Y: 0}, 2*math.Pi)
			case graphics.LineCapSquare:
				r.outline = append(r.outline,
					vec.Vec2{X: s.A.X - d, Y: s.A.Y - d},
					vec.Vec2{X: s.A.X + d, Y: s.A.Y - d},
					vec.Vec2{X: s.A.X + d, Y: s.A.Y + d},
					vec.Vec2{X: s.A.X - d, Y: s.A.Y + d})
			default:
				continue
			}
			r.outlineStart = append(r.outlineStart, start)
			continue
		}

		t := delta.Mul(1 / length)
		n := vec.Vec2{X: -t.Y, Y: t.X}

		// One side from A to B, the cap at B, the other side back, the
		// cap at A.  The polygon is closed implicitly.
		r.outline = append(r.outline, s.A.Add(n.Mul(d)), s.B.Add(n.Mul(d)))
		r.addCap(s.B, t, d, capStyle)
		r.outline = append(r.outline, s.B.Sub(n.Mul(d)), s.A.Sub(n.Mul(d)))
		r.addCap(s.A, t.Mul(-1), d, capStyle)
		r.outlineStart = append(r.outlineStart, start)
	}

	r.beginEdges()
	for i, start := range r.outlineStart {
		end := len(r.outline)
		if i+1 < len(r.outlineStart) {
			end = r.outlineStart[i+1]
		}
		poly := r.outline[start:end]
		if len(poly) < 3 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.scan(emit)
}

// addCap appends the cap geometry at P.  T is the outward tangent and d
// half the line width.  The offset points on both sides of P are added by
// the caller.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64, capStyle graphics.LineCapStyle) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch capStyle {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// from +N through T to -N, excluding both end points
		r.addArcInterior(P, d, N, -math.Pi)
	}
}

// addArc appends a full arc including its start point.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64) {
	r.outline = append(r.outline, center.Add(startDir.Mul(radius)))
	r.addArcInterior(center, radius, startDir, sweep)
}

// addArcInterior appends the points strictly between the start and the end
// of an arc.  The number of chords keeps the sagitta below the flatness.
func (r *Rasteriser) addArcInterior(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64) {
	if radius < r.Flatness {
		return
	}
	step := 2 * math.Acos(1-r.Flatness/radius)
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/step)), 2)
	dt := sweep / float64(n)
	for i := 1; i < n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

// zeroLengthThreshold is the shortest segment which still has a direction.
const zeroLengthThreshold = 1e-10
