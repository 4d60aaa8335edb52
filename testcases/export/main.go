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

// Command export renders all scenarios to PNG files in testdata/scenarios.
// Run from the module root directory.
package main

import (
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/dotmatrix"
	"seehuhn.de/go/dotmatrix/testcases"
)

func main() {
	dir := filepath.Join("testdata", "scenarios")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			img, err := dotmatrix.RenderImage(sc.Source, sc.Settings, sc.Size())
			if err != nil {
				panic(err)
			}
			data, err := dotmatrix.EncodePNG(img)
			if err != nil {
				panic(err)
			}
			name := category + "_" + sc.Name + ".png"
			if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
				panic(err)
			}
		}
	}
}
