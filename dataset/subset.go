// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"strings"
)

// A Subset selects which columns of a dataset are kept.
type Subset int

const (
	// SubsetAll keeps every column.
	SubsetAll Subset = iota
	// SubsetCategorical keeps the label and the categorical and
	// ordinal columns.
	SubsetCategorical
	// SubsetNumeric drops every categorical and ordinal column
	// except the label.
	SubsetNumeric
)

// Name suffixes that select a subset.
const (
	categoricalSuffix = "_categorical"
	numericSuffix     = "_numeric"
)

func (s Subset) String() string {
	switch s {
	case SubsetAll:
		return "all"
	case SubsetCategorical:
		return "categorical"
	case SubsetNumeric:
		return "numeric"
	}
	return fmt.Sprintf("Subset(%d)", int(s))
}

// An UnknownSubsetError is returned by Apply for a Subset value it
// does not know how to apply.
type UnknownSubsetError struct {
	Subset Subset
}

func (e *UnknownSubsetError) Error() string {
	return fmt.Sprintf("type subset should be numeric or categorical, got %v", e.Subset)
}

// ParseName splits a dataset name into its base name and the subset
// selected by its suffix. Names without a recognized suffix select
// SubsetAll.
func ParseName(name string) (base string, subset Subset) {
	switch {
	case strings.HasSuffix(name, categoricalSuffix):
		return strings.TrimSuffix(name, categoricalSuffix), SubsetCategorical
	case strings.HasSuffix(name, numericSuffix):
		return strings.TrimSuffix(name, numericSuffix), SubsetNumeric
	}
	return name, SubsetAll
}

// Apply narrows d to subset in place. SubsetAll leaves d unchanged.
func Apply(d *Dataset, subset Subset) error {
	var err error
	switch subset {
	case SubsetAll:
		return nil
	case SubsetNumeric:
		err = NumericSubset(d)
	case SubsetCategorical:
		err = CategoricalSubset(d)
	default:
		return &UnknownSubsetError{subset}
	}
	if err != nil {
		return err
	}
	d.Subset = subset
	return nil
}

// NumericSubset drops every categorical and ordinal column of d except
// the label column. Afterwards d tracks no categorical or ordinal
// columns; a categorical label is kept as a plain column.
func NumericSubset(d *Dataset) error {
	label, err := d.LabelIndex()
	if err != nil {
		return err
	}
	drop := make(map[int]bool)
	for _, i := range d.Categorical {
		drop[i] = true
	}
	for _, i := range d.Ordinal {
		drop[i] = true
	}
	delete(drop, label)

	d.project(retained(d.NumColumns(), drop))
	d.Categorical, d.Ordinal = []int{}, []int{}
	d.checkShape()
	return nil
}

// CategoricalSubset keeps the label column and the categorical and
// ordinal columns of d, dropping everything else. The categorical and
// ordinal indices are renumbered to match the remaining columns.
func CategoricalSubset(d *Dataset) error {
	label, err := d.LabelIndex()
	if err != nil {
		return err
	}
	keep := map[int]bool{label: true}
	for _, i := range d.Categorical {
		keep[i] = true
	}
	for _, i := range d.Ordinal {
		keep[i] = true
	}
	drop := make(map[int]bool)
	for i := 0; i < d.NumColumns(); i++ {
		if !keep[i] {
			drop[i] = true
		}
	}

	d.Categorical = renumber(d.Categorical, drop)
	d.Ordinal = renumber(d.Ordinal, drop)
	d.project(retained(d.NumColumns(), drop))
	d.checkShape()
	return nil
}

// retained returns the ascending indices in [0, n) not in drop.
func retained(n int, drop map[int]bool) []int {
	keep := make([]int, 0, n-len(drop))
	for i := 0; i < n; i++ {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	return keep
}

// renumber maps each index in idx to its position after the indices
// in drop are removed: i becomes i minus the number of dropped indices
// below it.
func renumber(idx []int, drop map[int]bool) []int {
	out := make([]int, len(idx))
	for k, i := range idx {
		shift := 0
		for j := range drop {
			if j < i {
				shift++
			}
		}
		out[k] = i - shift
	}
	return out
}
