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
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// DPI is the resolution of the print targets.
const DPI = 300

// maxTargetSide limits custom target sizes.
const maxTargetSide = 20000

// Target is an output size.
type Target struct {
	Name          string
	Width, Height int

	// Print targets simulate CMYK output.
	Print bool
}

// The preset targets.
var (
	Phone   = Target{Name: "phone", Width: 1260, Height: 2800}
	Desktop = Target{Name: "desktop", Width: 3840, Height: 2160}
	Square  = Target{Name: "square", Width: 2000, Height: 2000}
	A4      = Target{Name: "print-a4", Width: 2480, Height: 3508, Print: true}
	Letter  = Target{Name: "print-letter", Width: inches(8.5), Height: inches(11), Print: true}
	Print8  = Target{Name: "print-8x10", Width: inches(8), Height: inches(10), Print: true}
)

// Targets lists the preset targets.
var Targets = []Target{Phone, Desktop, Square, A4, Letter, Print8}

// Size returns the target size as a point.
func (t Target) Size() image.Point {
	return image.Point{X: t.Width, Y: t.Height}
}

// Portrait reports whether the target is taller than wide.
func (t Target) Portrait() bool {
	return t.Height > t.Width
}

func (t Target) String() string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("%dx%d", t.Width, t.Height)
}

// ParseTarget returns the preset target with the given name, or a custom
// screen target given as "WxH".
func ParseTarget(s string) (Target, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Targets {
		if t.Name == key {
			return t, nil
		}
	}

	ws, hs, ok := strings.Cut(key, "x")
	if !ok {
		return Target{}, fmt.Errorf("unknown target %q", s)
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 || w > maxTargetSide || h > maxTargetSide {
		return Target{}, fmt.Errorf("invalid target size %q", s)
	}
	return Target{Width: w, Height: h}, nil
}

func inches(x float64) int {
	return int(math.Round(x * DPI))
}
