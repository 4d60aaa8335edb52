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

// Package palette derives colours from a whole image or grid: the
// dominant colour used for automatic backgrounds, and a reduced palette
// for posterised dot colours.
package palette

import (
	"cmp"
	"image"
	"image/color"
	"maps"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"

	"seehuhn.de/go/dotmatrix/grid"
)

// Limits for the number of colours in Reduce.
const (
	MinColors = 2
	MaxColors = 16
)

// fallback is used when an image has no opaque pixels.
var fallback = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// Background returns the most prominent colour of img, as an opaque
// colour.
func Background(img image.Image) color.NRGBA {
	if img == nil || img.Bounds().Empty() {
		return fallback
	}
	cands := dominantcolor.FindWeight(img, 4)
	if len(cands) == 0 {
		return fallback
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Weight > best.Weight {
			best = c
		}
	}
	col, _ := colorful.MakeColor(best.RGBA)
	r, g, b := col.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Reduce maps every non-null cell of g to one of at most k colours found
// by k-means clustering in RGB space.  For k outside [MinColors,
// MaxColors] the grid is returned unchanged.  Grids which already use at
// most k distinct colours are also returned unchanged.
//
// The result depends only on the grid contents: equal grids give equal
// palettes.
func Reduce(g *grid.ColorGrid, k int) *grid.ColorGrid {
	if g.IsEmpty() || k < MinColors || k > MaxColors {
		return g
	}

	counts := make(map[color.NRGBA]int)
	var dataset clusters.Observations
	for y := range g.Rows {
		for x := range g.Cols {
			c, ok := g.At(x, y)
			if !ok {
				continue
			}
			counts[c]++
			dataset = append(dataset, coordinates(c))
		}
	}
	if len(counts) <= k {
		return g
	}

	cc := seed(counts, k)
	partition(cc, dataset)

	centers := make([]color.NRGBA, len(cc))
	for i, cl := range cc {
		col := colorful.Color{R: cl.Center[0], G: cl.Center[1], B: cl.Center[2]}
		r, gg, b := col.Clamped().RGB255()
		centers[i] = color.NRGBA{R: r, G: gg, B: b, A: 255}
	}

	return g.Map(func(c color.NRGBA) color.NRGBA {
		out := centers[cc.Nearest(coordinates(c))]
		out.A = c.A
		return out
	})
}

// maxIterations bounds the number of Lloyd steps in partition.
const maxIterations = 64

// seed picks k initial centres from the distinct colours: first the most
// frequent colour, then repeatedly the colour farthest from all centres
// chosen so far.  Ties go to the colour which sorts first.
//
// The caller must ensure that counts holds more than k colours.
func seed(counts map[color.NRGBA]int, k int) clusters.Clusters {
	cols := slices.SortedFunc(maps.Keys(counts), compareColors)

	first := cols[0]
	for _, c := range cols[1:] {
		if counts[c] > counts[first] {
			first = c
		}
	}

	cc := clusters.Clusters{{Center: coordinates(first)}}
	dist := make([]float64, len(cols))
	for i, c := range cols {
		dist[i] = coordinates(c).Distance(cc[0].Center)
	}
	for len(cc) < k {
		best := 0
		for i := range dist {
			if dist[i] > dist[best] {
				best = i
			}
		}
		center := coordinates(cols[best])
		cc = append(cc, clusters.Cluster{Center: center})
		for i, c := range cols {
			dist[i] = min(dist[i], coordinates(c).Distance(center))
		}
	}
	return cc
}

// partition runs Lloyd iterations until no observation changes its
// cluster.  Clusters which lose all their observations keep their
// previous centre.
func partition(cc clusters.Clusters, dataset clusters.Observations) {
	assign := make([]int, len(dataset))
	for i := range assign {
		assign[i] = -1
	}
	for range maxIterations {
		cc.Reset()
		changed := false
		for i, obs := range dataset {
			ci := cc.Nearest(obs)
			cc[ci].Append(obs)
			if assign[i] != ci {
				assign[i] = ci
				changed = true
			}
		}
		if !changed {
			return
		}
		cc.Recenter()
	}
}

func compareColors(a, b color.NRGBA) int {
	return cmp.Or(
		cmp.Compare(a.R, b.R),
		cmp.Compare(a.G, b.G),
		cmp.Compare(a.B, b.B),
		cmp.Compare(a.A, b.A),
	)
}

func coordinates(c color.NRGBA) clusters.Coordinates {
	return clusters.Coordinates{
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
	}
}
