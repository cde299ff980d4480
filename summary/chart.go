// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package summary

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/aclements/go-moremath/stats"
	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// A Format is a chart output file format.
type Format string

const (
	PDF Format = "pdf"
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case PDF, PNG, SVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown chart format %q (want pdf, png or svg)", s)
}

const barWidth = 12

// CoverageChart returns a bar chart with one bar per synthesizer and
// the y axis fixed to [0, 1].
func CoverageChart(bars []CoverageBar) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "coverage"

	values := make(plotter.Values, len(bars))
	ticks := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value()
		ticks[i] = b.Model
	}
	if len(bars) > 0 {
		bc, err := plotter.NewBarChart(values, vg.Points(2*barWidth))
		if err != nil {
			return nil, err
		}
		bc.Color = plotutil.Color(0)
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.NominalX(ticks...)
	}
	p.Y.Min, p.Y.Max = 0, 1
	rotateTicks(p, len(ticks))
	return p, nil
}

// PerformanceChart returns a grouped bar chart of perf: one group per
// metric and one bar per synthesizer within each group.
func PerformanceChart(perf *Performance) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = perf.Dataset
	p.Legend.Top = true

	n := len(perf.Synthesizers)
	var all []float64
	for j, synth := range perf.Synthesizers {
		values := make(plotter.Values, len(perf.Metrics))
		for i := range perf.Metrics {
			values[i] = perf.Values[i][j]
			all = append(all, values[i])
		}
		bc, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", synth, err)
		}
		bc.Color = plotutil.Color(j)
		bc.LineStyle.Width = 0
		// Center the group of n bars on each metric tick.
		bc.Offset = vg.Points(barWidth * (float64(j) - float64(n-1)/2))
		p.Add(bc)
		p.Legend.Add(synth, bc)
	}
	p.NominalX(perf.Metrics...)

	// Bars grow from zero, so keep zero on the axis.
	lo, hi := stats.Bounds(all)
	p.Y.Min, p.Y.Max = math.Min(lo, 0), math.Max(hi, 0)
	if p.Y.Min == p.Y.Max {
		p.Y.Max = 1
	}
	rotateTicks(p, len(perf.Metrics))
	return p, nil
}

// rotateTicks slants crowded x tick labels.
func rotateTicks(p *plot.Plot, n int) {
	if n <= 4 {
		return
	}
	p.X.Tick.Label.Rotation = -math.Pi / 8
	p.X.Tick.Label.YAlign = draw.YTop
	p.X.Tick.Label.XAlign = draw.XLeft
}

// chartSize returns a width that gives every x position some room.
func chartSize(positions, barsPer int) (w, h vg.Length) {
	w = vg.Points(float64(positions*(barsPer+1)*barWidth) + 120)
	if minW := 4 * vg.Inch; w < minW {
		w = minW
	}
	return w, 4 * vg.Inch
}

// newCanvas returns a canvas of the given size for format.
func newCanvas(format Format, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch format {
	case PDF:
		return vgpdf.New(w, h), nil
	case PNG:
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(150), vgimg.UseBackgroundColor(color.White))}, nil
	case SVG:
		return vgsvg.New(w, h), nil
	}
	return nil, fmt.Errorf("unknown chart format %q", format)
}

// Render draws p on a new canvas of size w×h and writes it to
// dir/name.<format> on fs. It returns the path of the written file.
func Render(fs afero.Fs, p *plot.Plot, w, h vg.Length, format Format, dir, name string) (string, error) {
	can, err := newCanvas(format, w, h)
	if err != nil {
		return "", err
	}
	p.Draw(draw.New(can))

	file := filepath.Join(dir, name+"."+string(format))
	f, err := fs.Create(file)
	if err != nil {
		return "", err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		fs.Remove(file)
		return "", err
	}
	return file, f.Close()
}
