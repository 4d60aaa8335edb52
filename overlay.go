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
	"image/color"
	"math"
	"math/rand/v2"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/dotmatrix/blob"
	"seehuhn.de/go/dotmatrix/grid"
	"seehuhn.de/go/dotmatrix/raster"
	"seehuhn.de/go/dotmatrix/surface"
	"seehuhn.de/go/dotmatrix/tone"
)

// lineStroker is implemented by surfaces which can stroke line segments.
// Other surfaces get markers built from rectangles.
type lineStroker interface {
	StrokeLines(segs []raster.Segment, width float64, capStyle graphics.LineCapStyle, col color.Color)
}

const (
	// markerArm is the half length of a marker bar, relative to the
	// dot radius.
	markerArm = 0.5

	// markerWidth is the bar width relative to the dot radius.
	markerWidth = 0.12

	// grainSpread is the standard deviation of the grain values.
	grainSpread = 64

	// grainStream separates the grain random numbers from other uses of
	// the seed.
	grainStream = 0x6772616e
)

// glow paints an enlarged, additive copy of every bright glyph dot.
func (p *pass) glow(dots []glyphDot) {
	strength := p.s.GlowStrength / 100
	if strength <= 0 || len(dots) == 0 {
		return
	}
	p.dst.SetComposite(surface.Lighter)
	for _, d := range dots {
		if d.brightness <= glowCutoff {
			continue
		}
		k := float64(d.brightness) / 255
		p.dst.SetAlpha(k * k * strength * 0.5)
		size := d.size * (1 + strength*1.5)
		p.dst.FillCircle(d.cx, d.cy, size/2, d.color)
	}
	p.dst.SetAlpha(1)
	p.dst.SetComposite(surface.SourceOver)
}

// markers draws a plus sign on every marker blob.  The sign is black on
// bright blobs and white on dark ones.
func (p *pass) markers(blobs []blob.Blob, g *grid.ColorGrid, place func(blob.Blob) lens) {
	p.dst.SetComposite(surface.Overlay)
	defer p.dst.SetComposite(surface.SourceOver)

	for _, b := range blobs {
		if !b.Marker {
			continue
		}
		l := place(b)
		arm := l.r * markerArm
		width := max(l.r*markerWidth, 1)
		if !markerVisible(arm, width) {
			continue
		}

		col := lightColor
		if blobBrightness(b, g) >= 128 {
			col = darkColor
		}

		if ls, ok := p.dst.(lineStroker); ok {
			ls.StrokeLines([]raster.Segment{
				{A: vec.Vec2{X: l.cx - arm, Y: l.cy}, B: vec.Vec2{X: l.cx + arm, Y: l.cy}},
				{A: vec.Vec2{X: l.cx, Y: l.cy - arm}, B: vec.Vec2{X: l.cx, Y: l.cy + arm}},
			}, width, graphics.LineCapRound, col)
			continue
		}
		p.dst.FillRect(surface.Rect{X: l.cx - arm, Y: l.cy - width/2, W: 2 * arm, H: width}, col)
		p.dst.FillRect(surface.Rect{X: l.cx - width/2, Y: l.cy - arm, W: width, H: arm - width/2}, col)
		p.dst.FillRect(surface.Rect{X: l.cx - width/2, Y: l.cy + width/2, W: width, H: arm - width/2}, col)
	}
}

// markerVisible reports whether a marker of the given size is visible.
func markerVisible(arm, width float64) bool {
	return arm > 0.5 && width > 0
}

// blobBrightness returns the mean luminance of the cells of b.
func blobBrightness(b blob.Blob, g *grid.ColorGrid) float64 {
	var cs []color.NRGBA
	for y := b.Y; y < b.Y+b.Size; y++ {
		for x := b.X; x < b.X+b.Size; x++ {
			if c, ok := g.At(x, y); ok {
				cs = append(cs, c)
			}
		}
	}
	if len(cs) == 0 {
		return float64(tone.Luma(b.Color))
	}
	return tone.MeanLuma(cs)
}

// GrainCell returns the size in pixels of one grain cell for a grain
// size slider value.
func GrainCell(grainSize float64) float64 {
	return 1 + tone.Clamp(grainSize)/100*7
}

// grain overlays monochrome noise.  If shapes is not nil, the noise is
// restricted to the painted dots.
func (p *pass) grain(shapes *image.Alpha) {
	alpha := p.s.GrainAmount * 35 / 100 / 100
	if alpha <= 0 {
		return
	}
	noise := grainImage(p.bounds, GrainCell(p.s.GrainSize), p.s.Seed)

	p.dst.SetComposite(surface.Overlay)
	p.dst.SetAlpha(alpha)
	if shapes != nil {
		p.dst.DrawMasked(noise, shapes)
	} else {
		p.dst.DrawImageRegion(noise, noise.Rect, surface.RectOf(p.bounds), false)
	}
	p.dst.SetAlpha(1)
	p.dst.SetComposite(surface.SourceOver)
}

// grainImage returns a noise image covering bounds.  Every cell × cell
// block of pixels has one uniformly random grey value; the values are
// normalised to mean 128.
func grainImage(bounds image.Rectangle, cell float64, seed uint64) *image.Gray {
	nw := max(int(math.Ceil(float64(bounds.Dx())/cell)), 1)
	nh := max(int(math.Ceil(float64(bounds.Dy())/cell)), 1)

	rng := rand.New(rand.NewPCG(seed, grainStream))
	vals := make([]float64, nw*nh)
	for i := range vals {
		vals[i] = rng.Float64()
	}
	mean, std := stat.MeanStdDev(vals, nil)

	small := image.NewGray(image.Rect(0, 0, nw, nh))
	for i, v := range vals {
		g := 128.0
		if std > 0 {
			g += (v - mean) / std * grainSpread
		}
		small.Pix[i] = uint8(math.Round(min(max(g, 0), 255)))
	}

	out := image.NewGray(bounds)
	draw.NearestNeighbor.Scale(out, bounds, small, small.Rect, draw.Src, nil)
	return out
}
