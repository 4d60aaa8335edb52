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

package grid

import (
	"image"
	"math"
)

// Crop describes which part of a source image is shown on a canvas.
type Crop struct {
	// Source is the selected region of the source image.
	Source image.Rectangle

	// PanX and PanY give the excess of the source, in canvas pixels, in
	// the direction which was cropped.  At most one of them is non-zero.
	PanX, PanY float64
}

// CanPan reports whether the crop leaves anything to pan over.
func (c Crop) CanPan() bool {
	return c.PanX > 0 || c.PanY > 0
}

// CropFor selects the part of an image with bounds img which fits a
// canvas of size canvasW × canvasH.  If the image is wider than the
// canvas, offX in [0, 1] selects the horizontal position of the crop;
// if it is taller, offY selects the vertical position.  Aspect ratios
// within 0.01 of each other are treated as equal and nothing is cropped.
func CropFor(img image.Rectangle, canvasW, canvasH int, offX, offY float64) Crop {
	iw, ih := float64(img.Dx()), float64(img.Dy())
	if iw <= 0 || ih <= 0 || canvasW <= 0 || canvasH <= 0 {
		return Crop{Source: img}
	}
	offX = clamp(offX, 0, 1)
	offY = clamp(offY, 0, 1)

	imgAspect := iw / ih
	canvasAspect := float64(canvasW) / float64(canvasH)
	switch {
	case math.Abs(imgAspect-canvasAspect) < aspectTolerance:
		return Crop{Source: img}

	case imgAspect > canvasAspect:
		w := ih * canvasAspect
		excess := iw - w
		x0 := img.Min.X + int(math.Round(offX*excess))
		return Crop{
			Source: image.Rect(x0, img.Min.Y, x0+int(math.Round(w)), img.Max.Y).Intersect(img),
			PanX:   excess * float64(canvasH) / ih,
		}

	default:
		h := iw / canvasAspect
		excess := ih - h
		y0 := img.Min.Y + int(math.Round(offY*excess))
		return Crop{
			Source: image.Rect(img.Min.X, y0, img.Max.X, y0+int(math.Round(h))).Intersect(img),
			PanY:   excess * float64(canvasW) / iw,
		}
	}
}

// PanOffset moves a crop offset by a drag of deltaPx canvas pixels, where
// rangePx is the pan range of the crop in the same direction.  The
// result is clamped to [0, 1].  Without a pan range the offset is
// returned unchanged.
func PanOffset(offset, deltaPx, rangePx float64) float64 {
	if rangePx <= 0 || math.IsNaN(rangePx) {
		return offset
	}
	return clamp(offset+deltaPx/rangePx, 0, 1)
}
