// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package summary

import (
	"fmt"
	"io"

	"github.com/aclements/go-moremath/stats"
	"github.com/hashicorp/go-multierror"
	"github.com/sdgym/sdgym/internal/texttab"
	"github.com/sdgym/sdgym/results"
	"github.com/spf13/afero"
)

// A Report is the outcome of summarizing a set of results.
type Report struct {
	Coverage []CoverageBar
	// Performance has one entry per dataset with results, in
	// dataset order.
	Performance []*Performance
	// Files lists the chart files written.
	Files []string
}

// A Writer renders summary charts into a directory.
type Writer struct {
	FS     afero.Fs
	Dir    string
	Format Format
}

// Write computes the coverage of sets over datasets and the
// performance summary of every dataset, and renders a "coverage"
// chart plus one chart per dataset with results. Datasets without
// results get no chart.
//
// A failure to render one chart does not stop the others; all
// failures are returned together.
func (w *Writer) Write(datasets []string, sets []results.Set) (*Report, error) {
	if err := w.FS.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, err
	}
	format := w.Format
	if format == "" {
		format = PDF
	}

	r := &Report{Coverage: Coverage(datasets, sets)}
	var errs *multierror.Error

	p, err := CoverageChart(r.Coverage)
	if err == nil {
		cw, ch := chartSize(len(r.Coverage), 1)
		var file string
		file, err = Render(w.FS, p, cw, ch, format, w.Dir, "coverage")
		if err == nil {
			r.Files = append(r.Files, file)
		}
	}
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("coverage chart: %w", err))
	}

	for _, dataset := range datasets {
		perf := DatasetPerformance(dataset, sets)
		if perf == nil {
			log.Debugf("no results for dataset %s", dataset)
			continue
		}
		r.Performance = append(r.Performance, perf)
		file, err := w.renderPerformance(perf, format)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s chart: %w", dataset, err))
			continue
		}
		r.Files = append(r.Files, file)
	}
	return r, errs.ErrorOrNil()
}

func (w *Writer) renderPerformance(perf *Performance, format Format) (string, error) {
	p, err := PerformanceChart(perf)
	if err != nil {
		return "", err
	}
	cw, ch := chartSize(len(perf.Metrics), len(perf.Synthesizers))
	return Render(w.FS, p, cw, ch, format, w.Dir, perf.Dataset)
}

// WriteText writes r as plain-text tables to out.
func (r *Report) WriteText(out io.Writer) error {
	var tab texttab.Table
	tab.Row().Cell("synthesizer").Cell("datasets", texttab.Right).Cell("coverage", texttab.Right)
	values := make([]float64, 0, len(r.Coverage))
	for _, b := range r.Coverage {
		tab.Row().Cell(b.Model).
			Cell(fmt.Sprintf("%d/%d", b.Covered, b.Total), texttab.Right).
			Cell(fmt.Sprintf("%.3f", b.Value()), texttab.Right)
		values = append(values, b.Value())
	}
	if len(values) > 0 {
		tab.Row().Cell("mean").Cell("").Cell(fmt.Sprintf("%.3f", stats.Mean(values)), texttab.Right)
	}
	if err := tab.Format(out); err != nil {
		return err
	}

	for _, perf := range r.Performance {
		if _, err := fmt.Fprintf(out, "\n%s\n", perf.Dataset); err != nil {
			return err
		}
		tab = texttab.Table{}
		tab.Row().Cell("metric")
		for _, s := range perf.Synthesizers {
			tab.Cell(s, texttab.Right)
		}
		for i, m := range perf.Metrics {
			tab.Row().Cell(m)
			for j := range perf.Synthesizers {
				v := "-"
				if perf.Present[i][j] {
					v = fmt.Sprintf("%.4g", perf.Values[i][j])
				}
				tab.Cell(v, texttab.Right)
			}
		}
		if err := tab.Format(out); err != nil {
			return err
		}
	}
	return nil
}
