// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package summary computes and charts summaries of synthesizer
// benchmark results.
package summary

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/sdgym/sdgym/internal/logger"
	"github.com/sdgym/sdgym/results"
	"github.com/sirupsen/logrus"
)

var log = logger.WithNamespace("summary")

// A CoverageBar is the coverage of one synthesizer.
type CoverageBar struct {
	Model string
	// Covered is the number of known datasets with at least one
	// result entry.
	Covered int
	// Total is the number of known datasets.
	Total int
}

// Value returns the covered fraction of datasets, or 0 if there are
// no datasets.
func (b CoverageBar) Value() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Covered) / float64(b.Total)
}

// Coverage computes the fraction of datasets each set has results for.
// It returns one bar per set, in order. Entries for datasets not in
// datasets are logged and not counted.
func Coverage(datasets []string, sets []results.Set) []CoverageBar {
	known := make(map[string]bool, len(datasets))
	for _, d := range datasets {
		known[d] = true
	}
	bars := make([]CoverageBar, 0, len(sets))
	for _, set := range sets {
		covered := make(map[string]bool)
		for _, e := range set.Entries {
			if !known[e.Dataset] {
				log.WithFields(logrus.Fields{"model": set.Model, "dataset": e.Dataset}).
					Warn("result for unknown dataset")
				continue
			}
			covered[e.Dataset] = true
		}
		bars = append(bars, CoverageBar{Model: set.Model, Covered: len(covered), Total: len(known)})
	}
	return bars
}

// Performance is the mean value of each metric for each synthesizer
// on one dataset.
type Performance struct {
	Dataset string
	// Metrics and Synthesizers are in order of first appearance.
	Metrics      []string
	Synthesizers []string
	// Values[i][j] is the mean of metric i for synthesizer j.
	// Present[i][j] reports whether synthesizer j reported metric
	// i at all; Values[i][j] is 0 where it did not.
	Values  [][]float64
	Present [][]bool
}

// DatasetPerformance averages every metric reported for dataset across
// all entries of all sets, grouped by synthesizer name (see
// results.Entry.SynthesizerName) and metric. It returns nil if no
// entry reports a metric for dataset.
func DatasetPerformance(dataset string, sets []results.Set) *Performance {
	var synths, metrics []string
	var values []float64
	for _, set := range sets {
		for i := range set.Entries {
			e := &set.Entries[i]
			if e.Dataset != dataset {
				continue
			}
			name := e.SynthesizerName(set.Model)
			for _, score := range e.Performance {
				for _, m := range score.Metrics {
					synths = append(synths, name)
					metrics = append(metrics, m.Name)
					values = append(values, m.Value)
				}
			}
		}
	}
	if len(values) == 0 {
		return nil
	}

	tab := new(table.Builder).
		Add("synthesizer", synths).
		Add("metric", metrics).
		Add("value", values).
		Done()
	means := table.Flatten(ggstat.Agg("synthesizer", "metric")(ggstat.AggMean("value")).F(tab))
	ss := means.MustColumn("synthesizer").([]string)
	ms := means.MustColumn("metric").([]string)
	vs := means.MustColumn("mean value").([]float64)

	// Lay the means out as a metric × synthesizer grid.
	p := &Performance{Dataset: dataset}
	row := make(map[string]int)
	col := make(map[string]int)
	for k := range ss {
		if _, ok := row[ms[k]]; !ok {
			row[ms[k]] = len(p.Metrics)
			p.Metrics = append(p.Metrics, ms[k])
		}
		if _, ok := col[ss[k]]; !ok {
			col[ss[k]] = len(p.Synthesizers)
			p.Synthesizers = append(p.Synthesizers, ss[k])
		}
	}
	p.Values = make([][]float64, len(p.Metrics))
	p.Present = make([][]bool, len(p.Metrics))
	for i := range p.Metrics {
		p.Values[i] = make([]float64, len(p.Synthesizers))
		p.Present[i] = make([]bool, len(p.Synthesizers))
	}
	for k := range ss {
		i, j := row[ms[k]], col[ss[k]]
		p.Values[i][j] = vs[k]
		p.Present[i][j] = true
	}
	return p
}
