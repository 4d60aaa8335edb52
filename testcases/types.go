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

// Package testcases holds named render scenarios, shared by the tests
// and by the command which writes them to PNG files for inspection.
package testcases

import (
	"image"

	"seehuhn.de/go/dotmatrix"
)

// Scenario defines a single render test.
type Scenario struct {
	Name     string             // lowercase a-z and _ only
	Source   image.Image        // the bitmap to render
	Width    int                // canvas width in pixels
	Height   int                // canvas height in pixels
	Settings dotmatrix.Settings // the complete settings of the pass
}

// Size returns the canvas size.
func (s Scenario) Size() image.Point {
	return image.Point{X: s.Width, Y: s.Height}
}

// with returns the default settings of v, modified by f.
func with(v dotmatrix.Variant, f func(*dotmatrix.Settings)) dotmatrix.Settings {
	s := dotmatrix.DefaultSettings(v)
	if f != nil {
		f(&s)
	}
	return s
}
