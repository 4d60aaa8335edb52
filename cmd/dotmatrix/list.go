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


package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"seehuhn.de/go/dotmatrix"
	"seehuhn.de/go/dotmatrix/grid"
)

// Variants is the variants command.
type Variants struct{}

// Run is called by kong when the variants command is executed.
func (c *Variants) Run(logger *slog.Logger) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tLANDSCAPE\tPORTRAIT\tPRINT")
	for _, v := range dotmatrix.Variants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v,
			formula(v.Formula(false, false)),
			formula(v.Formula(true, false)),
			formula(v.Formula(false, true)))
	}
	return w.Flush()
}

// Targets is the targets command.
type Targets struct{}

// Run is called by kong when the targets command is executed.
func (c *Targets) Run(logger *slog.Logger) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tWIDTH\tHEIGHT\tCMYK")
	for _, t := range dotmatrix.Targets {
		fmt.Fprintf(w, "%s\t%d\t%d\t%t\n", t.Name, t.Width, t.Height, t.Print)
	}
	return w.Flush()
}

// formula describes the column range of a grid formula.
func formula(f grid.Formula) string {
	return fmt.Sprintf("%g-%g", f.Base, f.Base+f.Scale)
}
