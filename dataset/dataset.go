// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset loads synthetic-data benchmark datasets and derives
// column subsets from them.
//
// A dataset is a pair of numeric matrices, train and test, whose
// columns are described by a Metadata document. Column descriptors
// carry a type; categorical and ordinal columns are tracked by index
// so that consumers can treat them specially. A dataset name may carry
// a "_categorical" or "_numeric" suffix, which selects a column subset
// of the base dataset (see Subset).
package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Column types recognized in Metadata. Any other type is treated as
// continuous.
const (
	Categorical = "categorical"
	Ordinal     = "ordinal"
	Continuous  = "continuous"
)

// LabelColumn is the name of the target column of a dataset.
const LabelColumn = "label"

// ErrNoLabel is returned when a subset needs the label column and the
// metadata has no column named LabelColumn.
var ErrNoLabel = errors.New("label column not found")

// A Column describes one column of a dataset.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Metadata is the JSON document shipped next to each dataset archive.
type Metadata struct {
	Columns     []Column `json:"columns"`
	ProblemType string   `json:"problem_type,omitempty"`
}

// ColumnsOf returns the indices of the categorical and ordinal columns
// of meta, in column order.
func ColumnsOf(meta *Metadata) (categorical, ordinal []int) {
	categorical, ordinal = []int{}, []int{}
	for i, c := range meta.Columns {
		switch c.Type {
		case Categorical:
			categorical = append(categorical, i)
		case Ordinal:
			ordinal = append(ordinal, i)
		}
	}
	return categorical, ordinal
}

// A Dataset is a loaded benchmark dataset, possibly narrowed to a
// column subset.
//
// The number of columns of Train and Test always equals
// len(Meta.Columns).
type Dataset struct {
	// Name is the base name of the dataset, without subset suffix.
	Name string
	// Subset is the column subset this view was narrowed to.
	Subset Subset

	Train, Test *mat.Dense
	Meta        *Metadata

	// Categorical and Ordinal hold column indices into Meta.Columns.
	Categorical []int
	Ordinal     []int
}

// New returns a Dataset over train, test and meta with its
// categorical and ordinal columns derived from meta. It fails if the
// matrices do not agree with the metadata.
func New(name string, train, test *mat.Dense, meta *Metadata) (*Dataset, error) {
	n := len(meta.Columns)
	if _, c := train.Dims(); c != n {
		return nil, fmt.Errorf("dataset %s: train has %d columns, metadata describes %d", name, c, n)
	}
	if _, c := test.Dims(); c != n {
		return nil, fmt.Errorf("dataset %s: test has %d columns, metadata describes %d", name, c, n)
	}
	d := &Dataset{Name: name, Train: train, Test: test, Meta: meta}
	d.Categorical, d.Ordinal = ColumnsOf(meta)
	return d, nil
}

// NumColumns returns the number of columns of d.
func (d *Dataset) NumColumns() int {
	return len(d.Meta.Columns)
}

// LabelIndex returns the index of the first column named LabelColumn,
// or ErrNoLabel.
func (d *Dataset) LabelIndex() (int, error) {
	for i, c := range d.Meta.Columns {
		if c.Name == LabelColumn {
			return i, nil
		}
	}
	return -1, fmt.Errorf("dataset %s: %w", d.Name, ErrNoLabel)
}

// project narrows d to the columns in keep, which must be ascending.
func (d *Dataset) project(keep []int) {
	d.Train = selectColumns(d.Train, keep)
	d.Test = selectColumns(d.Test, keep)
	cols := make([]Column, len(keep))
	for k, j := range keep {
		cols[k] = d.Meta.Columns[j]
	}
	d.Meta.Columns = cols
}

// checkShape panics if the column invariant does not hold.
func (d *Dataset) checkShape() {
	n := d.NumColumns()
	_, tc := d.Train.Dims()
	_, sc := d.Test.Dims()
	if tc != n || sc != n {
		panic(fmt.Sprintf("dataset %s: %d metadata columns, train has %d, test has %d", d.Name, n, tc, sc))
	}
}

func selectColumns(m *mat.Dense, keep []int) *mat.Dense {
	r, _ := m.Dims()
	out := mat.NewDense(r, len(keep), nil)
	col := make([]float64, r)
	for k, j := range keep {
		mat.Col(col, j, m)
		out.SetCol(k, col)
	}
	return out
}
