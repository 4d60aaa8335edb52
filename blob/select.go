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

package blob

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/dotmatrix/grid"
	"seehuhn.de/go/dotmatrix/tone"
)

const (
	// markerShare is the fraction of all blobs which get a marker.
	markerShare = 0.04

	// maxMarkers limits the number of markers.
	maxMarkers = 5
)

// Options control Detect.
type Options struct {
	Sensitivity float64 // colour similarity, 0-100
	PixelGap    float64 // gap between dots, 0-100
	Markers     bool    // flag the largest blobs as markers
}

// Result is the outcome of a full blob detection pass.
type Result struct {
	// Blobs holds the primary blobs in anchor order, followed by the
	// fillers.
	Blobs []Blob

	// Primary is the number of primary blobs at the start of Blobs.
	// These tile the grid.
	Primary int

	// MaxSize is the largest blob size, or 0 if there are no drawable
	// blobs.
	MaxSize int

	// GapFraction is the gap between dots in grid units.
	GapFraction float64
}

// Detect runs Merge, FillGaps and optionally SelectMarkers on g.
func Detect(g *grid.ColorGrid, opt Options) *Result {
	primary := Merge(g, opt.Sensitivity)
	gap := GapFraction(opt.PixelGap)
	blobs := append(primary, FillGaps(primary, g, gap)...)
	if opt.Markers {
		SelectMarkers(blobs)
	}
	return &Result{
		Blobs:       blobs,
		Primary:     len(primary),
		MaxSize:     MaxSize(blobs),
		GapFraction: gap,
	}
}

// Visible returns the blobs which should be drawn for the given lower
// limit slider: non-empty blobs with size at least lowerLimit/100 of the
// largest size.  Filtered blobs keep their place in the tiling and in
// the marker ranking.
func (r *Result) Visible(lowerLimit float64) []Blob {
	limit := tone.Clamp(lowerLimit) / 100 * float64(r.MaxSize)
	out := make([]Blob, 0, len(r.Blobs))
	for _, b := range r.Blobs {
		if b.Empty || float64(b.Size) < limit {
			continue
		}
		out = append(out, b)
	}
	return out
}

// MaxSize returns the size of the largest non-empty blob.
func MaxSize(blobs []Blob) int {
	m := 0
	for _, b := range blobs {
		if !b.Empty {
			m = max(m, b.Size)
		}
	}
	return m
}

// SelectMarkers flags the largest blobs as markers and returns their
// number.  The count is 4% of the non-empty blobs, rounded up, but at
// most 5.  Ties keep the order of the slice, so earlier anchors win.
func SelectMarkers(blobs []Blob) int {
	var idx []int
	for i, b := range blobs {
		blobs[i].Marker = false
		if !b.Empty {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return 0
	}
	n := min(int(math.Ceil(markerShare*float64(len(idx)))), maxMarkers)

	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(blobs[b].Size, blobs[a].Size)
	})
	for _, i := range idx[:n] {
		blobs[i].Marker = true
	}
	return n
}
