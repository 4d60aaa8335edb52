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
	"strings"

	"seehuhn.de/go/dotmatrix/grid"
)

// Variant selects one of the render pipelines.
type Variant int

// The render pipelines.
const (
	// GlyphMirror renders a square, optionally circular, grid of
	// monochrome dots with a glow.
	GlyphMirror Variant = iota

	// Wallpaper renders one coloured dot per cell at wallpaper sizes.
	Wallpaper

	// PhotoWidget is Wallpaper with a coarser grid for small widgets.
	PhotoWidget

	// ValueAliasing scales every dot by the brightness of its cell.
	ValueAliasing

	// GlassDots merges similar cells into blobs, drawn as refracting
	// glass beads.
	GlassDots
)

// Variants lists all variants, in order.
var Variants = []Variant{GlyphMirror, Wallpaper, PhotoWidget, ValueAliasing, GlassDots}

var variantNames = map[Variant]string{
	GlyphMirror:   "glyph-mirror",
	Wallpaper:     "wallpaper",
	PhotoWidget:   "photo-widget",
	ValueAliasing: "value-aliasing",
	GlassDots:     "glass-dots",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the variant with the given name.  Names are
// case-insensitive, and underscores may be used instead of dashes.
func ParseVariant(s string) (Variant, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, v := range Variants {
		if variantNames[v] == key {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if _, ok := variantNames[v]; !ok {
		return nil, fmt.Errorf("invalid variant %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	x, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = x
	return nil
}

// Grid width formulas.  The Glyph Mirror grid uses coverage.Diameter
// instead.
var (
	PhoneWallpaper   = grid.Formula{Base: 12, Scale: 48}
	DesktopWallpaper = grid.Formula{Base: 24, Scale: 96}
	PhotoGrid        = grid.Formula{Base: 8, Scale: 40}
	ValueScreen      = grid.Formula{Base: 16, Scale: 112}
	ValuePrint       = grid.Formula{Base: 24, Scale: 176}
	GlassGrid        = grid.Formula{Base: 10, Scale: 70}
)

// Formula returns the grid formula of v for a canvas of the given
// orientation.  Print selects the denser grids used for print targets.
func (v Variant) Formula(portrait, print bool) grid.Formula {
	switch v {
	case Wallpaper:
		if portrait {
			return PhoneWallpaper
		}
		return DesktopWallpaper
	case PhotoWidget:
		return PhotoGrid
	case ValueAliasing:
		if print {
			return ValuePrint
		}
		return ValueScreen
	case GlassDots:
		return GlassGrid
	default:
		return grid.Formula{}
	}
}
