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

// Package dotmatrix re-renders raster images as a matrix of dots.
//
// A render pass samples the source image into a coarse colour grid,
// adjusts the cell colours, decides the size of every dot and finally
// paints background, dots and overlays onto a surface.  Five pipelines
// share this structure and differ in grid size, colour policy and
// compositing; see Variant.
//
// Every pass starts from scratch.  Nothing is cached between passes, so
// a Renderer can be reused freely but not concurrently with the same
// destination surface.
package dotmatrix

//go:generate go run ./testcases/export

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"
	"time"

	"seehuhn.de/go/dotmatrix/coverage"
	"seehuhn.de/go/dotmatrix/grid"
	"seehuhn.de/go/dotmatrix/surface"
	"seehuhn.de/go/dotmatrix/tone"
)

// Performance limits above which a render pass logs a warning.
const (
	PerformanceWarnBlobs = 4000
	PerformanceWarnCells = 10000
)

var (
	// ErrNoSurface is returned when there is nothing to draw on.
	ErrNoSurface = errors.New("dotmatrix: no surface")

	// ErrNoImage is returned when there is no source image.
	ErrNoImage = errors.New("dotmatrix: no source image")
)

// Renderer runs render passes.  The zero value is ready to use.
type Renderer struct {
	// Logger receives diagnostics.  If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Render draws src onto dst, using the pipeline selected by
// s.Variant.  On error dst is left unchanged.
func Render(dst surface.Surface, src image.Image, s Settings) error {
	return (&Renderer{}).Render(dst, src, s)
}

// RenderImage renders src into a new image of the given size.
func RenderImage(src image.Image, s Settings, size image.Point) (*image.NRGBA, error) {
	return (&Renderer{}).RenderImage(src, s, size)
}

// RenderImage renders src into a new image of the given size.  The full
// pipeline runs at the requested size.
func (r *Renderer) RenderImage(src image.Image, s Settings, size image.Point) (*image.NRGBA, error) {
	c := surface.NewCanvas(size.X, size.Y)
	if err := r.Render(c, src, s); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// Render draws src onto dst, using the pipeline selected by
// s.Variant.  On error dst is left unchanged.
func (r *Renderer) Render(dst surface.Surface, src image.Image, s Settings) error {
	logger := r.logger()
	if dst == nil {
		logger.Debug("render skipped", "error", ErrNoSurface)
		return ErrNoSurface
	}
	if src == nil {
		logger.Debug("render skipped", "error", ErrNoImage)
		return ErrNoImage
	}

	start := time.Now()
	s = s.Clamped()
	bg := resolveBackground(s, src, logger)
	paintBackground(dst, bg, s)

	p := &pass{
		dst:    dst,
		src:    src,
		s:      s,
		bg:     bg,
		bounds: dst.Bounds(),
		logger: logger,
	}
	if !p.bounds.Empty() {
		switch s.Variant {
		case GlyphMirror:
			p.glyph()
		case Wallpaper, PhotoWidget:
			p.cells()
		case ValueAliasing:
			p.value()
		case GlassDots:
			p.glass()
		default:
			logger.Warn("unknown variant, background only", "variant", s.Variant)
		}
	}
	dst.ResetClip()
	dst.SetComposite(surface.SourceOver)
	dst.SetAlpha(1)

	logger.Debug("render",
		"variant", s.Variant,
		"cols", p.cols,
		"rows", p.rows,
		"blobs", p.blobs,
		"elapsed", time.Since(start))
	if p.blobs > PerformanceWarnBlobs || p.cols*p.rows > PerformanceWarnCells {
		logger.Warn("render pass is slow at this resolution",
			"variant", s.Variant,
			"cells", p.cols*p.rows,
			"blobs", p.blobs)
	}
	return nil
}

func (r *Renderer) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// pass holds the state of one render pass.
type pass struct {
	dst    surface.Surface
	src    image.Image
	s      Settings
	bg     backdrop
	bounds image.Rectangle
	logger *slog.Logger

	// statistics for the log
	cols, rows int
	blobs      int
}

// sample crops src to the aspect ratio of area and samples it into a
// grid of the given width.  The grid height follows the aspect ratio of
// area.
func (p *pass) sample(f grid.Formula, area image.Rectangle) (*grid.ColorGrid, grid.Crop) {
	w, h := area.Dx(), area.Dy()
	cols, rows := f.Dims(p.s.Resolution, w, h)
	crop := grid.CropFor(p.src.Bounds(), w, h, p.s.CropOffsetX, p.s.CropOffsetY)
	g := grid.Sample(p.src, crop.Source, cols, rows, grid.DefaultAlphaThreshold)
	p.cols, p.rows = g.Cols, g.Rows
	return g, crop
}

// color applies the colour policy of the settings to a cell.
func (p *pass) color(c color.NRGBA) color.NRGBA {
	lv := p.s.Levels()
	if p.s.IsMonochrome {
		c = lv.Grey(c)
	} else {
		c = lv.Color(c)
	}
	if p.s.CMYK {
		c = tone.SimulatePrint(c)
	}
	return c
}

// cellGap is the fraction of a cell left empty around the dots of the
// cell pipelines.
func (p *pass) cellGap() float64 {
	return p.s.PixelGap / 200
}

// dot draws a circle or square of the given size centred at (cx, cy).
// Without anti-aliasing the dot is snapped to whole pixels.
func (p *pass) dot(cx, cy, size float64, round bool, c color.Color) {
	if !p.s.IsAntiAliased {
		size = math.Round(size)
		cx = snap(cx, size)
		cy = snap(cy, size)
	}
	if !coverage.Drawable(size, size) {
		return
	}
	if round {
		p.dst.FillCircle(cx, cy, size/2, c)
		return
	}
	p.dst.FillRect(surface.Rect{X: cx - size/2, Y: cy - size/2, W: size, H: size}, c)
}

// snap moves a centre coordinate so that a shape of the given integer
// size starts on a pixel boundary.
func snap(c, size float64) float64 {
	return math.Round(c-size/2) + size/2
}
