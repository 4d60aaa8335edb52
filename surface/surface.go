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

// Package surface defines the drawing target of the dot-matrix renderer.
//
// The render pipelines only need a handful of operations: rectangles,
// circles, scaled image regions, three composite modes, a global alpha,
// a circular clip and shape masks.  Any backend providing these can be used as a
// Surface; Canvas is the software implementation used for export.
package surface

import (
	"fmt"
	"image"
	"image/color"
)

// Surface is the capability set the render pipelines draw with.
type Surface interface {
	// Bounds returns the pixel rectangle of the surface.
	Bounds() image.Rectangle

	// FillRect paints r with c, using the current composite mode, alpha
	// and clip.
	FillRect(r Rect, c color.Color)

	// ClearRect makes r fully transparent.  It honours the clip but
	// ignores the composite mode and alpha.
	ClearRect(r Rect)

	// FillCircle paints the disk with centre (cx, cy) and the given radius.
	FillCircle(cx, cy, radius float64, c color.Color)

	// DrawImageRegion draws the part sr of src, scaled to fill dst.
	// Without smoothing the scaling uses nearest-neighbour sampling.
	DrawImageRegion(src image.Image, sr image.Rectangle, dst Rect, smooth bool)

	// SetComposite selects how subsequent drawing combines with the
	// existing pixels.
	SetComposite(m CompositeMode)

	// SetAlpha sets the global opacity in [0, 1] of subsequent drawing.
	SetAlpha(a float64)

	// ClipToCircle restricts subsequent drawing to a disk, intersected
	// with the current clip region.
	ClipToCircle(cx, cy, radius float64)

	// ResetClip removes the clip region.
	ResetClip()

	// BeginMask starts recording the coverage of all subsequent painting
	// operations inside r.  Clearing is not recorded.
	BeginMask(r image.Rectangle)

	// EndMask stops recording and returns the recorded coverage.  It
	// returns nil if no recording was in progress.
	EndMask() *image.Alpha

	// DrawMasked composites src onto the surface, weighted by mask, using
	// the current composite mode, alpha and clip.  Pixels outside the
	// mask are left unchanged.
	DrawMasked(src image.Image, mask *image.Alpha)
}

// Rect is a rectangle in device pixels, given by its top-left corner
// and its size.
type Rect struct {
	X, Y, W, H float64
}

// RectOf converts an integer rectangle.
func RectOf(r image.Rectangle) Rect {
	return Rect{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// CompositeMode selects a blend operation.
type CompositeMode int

// The supported composite modes.
const (
	// SourceOver paints the source on top of the destination.
	SourceOver CompositeMode = iota

	// Lighter adds the premultiplied source to the destination.
	Lighter

	// Overlay combines source and destination with the separable overlay
	// blend function, then composites the result source-over.
	Overlay
)

func (m CompositeMode) String() string {
	switch m {
	case SourceOver:
		return "source-over"
	case Lighter:
		return "lighter"
	case Overlay:
		return "overlay"
	default:
		return fmt.Sprintf("CompositeMode(%d)", int(m))
	}
}
