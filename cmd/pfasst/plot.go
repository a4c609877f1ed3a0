// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// plotResidualHistory renders the sweep-by-sweep absolute residual
// norm (log scale) to a PNG, the optional diagnostic companion to the
// numeric run requested by -plot-residuals. gonum/plot is otherwise
// unexercised in this pack (only RuiCat-circuit's go.mod names it, with
// no call site to ground against), so this sticks to plot's
// best-known stable surface: a single Line plotter over an XYs series.
func plotResidualHistory(path string, absNorms []float64) error {
	p := plot.New()
	p.Title.Text = "residual history"
	p.X.Label.Text = "sweep"
	p.Y.Label.Text = "abs residual norm"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}

	pts := make(plotter.XYs, len(absNorms))
	for i, v := range absNorms {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
