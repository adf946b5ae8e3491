// SPDX-License-Identifier: MIT

package plot

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/katalvlaran/dynprog/policy"
)

// Point is one scatter point.
type Point struct{ X, Y, Z float64 }

// finite reports whether every coordinate is a finite number.
func (p Point) finite() bool {
	for _, v := range [...]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Axes names the three scatter axes.
type Axes struct{ X, Y, Z string }

// CoordFunc maps a state and its decision to a point. Returning false
// leaves the state out.
type CoordFunc[S comparable, A any] func(x S, d policy.Decision[A]) (Point, bool)

// Scatter builds a 3-D scatter of stage, one point per state in stage
// order. Points with a non-finite coordinate (e.g. an infeasible +Inf
// value) are dropped; the chart format has no encoding for them.
func Scatter[S comparable, A any](title string, axes Axes, stage *policy.Stage[S, A], coord CoordFunc[S, A]) *charts.Scatter3D {
	data := make([]opts.Chart3DData, 0, stage.Len())
	for x, d := range stage.All() {
		p, ok := coord(x, d)
		if !ok || !p.finite() {
			continue
		}
		data = append(data, opts.Chart3DData{
			Name:  fmt.Sprint(x),
			Value: []interface{}{p.X, p.Y, p.Z},
		})
	}

	c := charts.NewScatter3D()
	c.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "t = " + strconv.Itoa(stage.T())}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: axes.X}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: axes.Y}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: axes.Z}),
	)
	c.AddSeries(title, data)

	return c
}

// Line is one named per-stage series.
type Line struct {
	Name   string
	Values []float64
}

// Lines builds a line chart with one series per line over x = 0..n−1,
// n being the longest line. Non-finite values become gaps.
func Lines(title, xName string, lines ...Line) *charts.Line {
	n := 0
	for _, l := range lines {
		n = max(n, len(l.Values))
	}
	xs := make([]string, n)
	for i := range xs {
		xs[i] = strconv.Itoa(i)
	}

	c := charts.NewLine()
	c.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
	)
	c.SetXAxis(xs)
	for _, l := range lines {
		items := make([]opts.LineData, len(l.Values))
		for i, v := range l.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				items[i] = opts.LineData{Value: "-"}
				continue
			}
			items[i] = opts.LineData{Value: v}
		}
		c.AddSeries(l.Name, items)
	}

	return c
}

// Render writes cs as one HTML page.
func Render(w io.Writer, cs ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(cs...)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: render: %w", err)
	}

	return nil
}

// Stage3D renders stage as a 3-D scatter page.
func Stage3D[S comparable, A any](w io.Writer, title string, axes Axes, stage *policy.Stage[S, A], coord CoordFunc[S, A]) error {
	return Render(w, Scatter(title, axes, stage, coord))
}

// Series renders lines as a line-chart page.
func Series(w io.Writer, title, xName string, lines ...Line) error {
	return Render(w, Lines(title, xName, lines...))
}

// ValueSeries collects v_t(x) for t = 0..T−1 from tbl, one point per stage.
func ValueSeries[S comparable, A any](name string, tbl *policy.Table[S, A], x S) Line {
	vs := make([]float64, tbl.Horizon())
	for t := range vs {
		vs[t] = tbl.Value(t, x)
	}
	return Line{Name: name, Values: vs}
}
