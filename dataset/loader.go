// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// A Loader loads datasets by name through a Cache.
type Loader struct {
	Cache *Cache
}

// Load loads the dataset called name, which may carry a subset suffix
// (see ParseName), and narrows it to that subset.
func (l *Loader) Load(ctx context.Context, name string) (*Dataset, error) {
	base, subset := ParseName(name)
	l.Cache.log().Infof("Loading dataset %s (%s variables)", base, subset)

	train, test, err := l.loadArchive(ctx, base+".npz")
	if err != nil {
		return nil, err
	}
	meta, err := l.loadMetadata(ctx, base+".json")
	if err != nil {
		return nil, err
	}
	d, err := New(base, train, test, meta)
	if err != nil {
		return nil, err
	}
	if err := Apply(d, subset); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadTrain is like Load but returns only the training matrix and the
// categorical and ordinal column indices.
func (l *Loader) LoadTrain(ctx context.Context, name string) (train *mat.Dense, categorical, ordinal []int, err error) {
	d, err := l.Load(ctx, name)
	if err != nil {
		return nil, nil, nil, err
	}
	return d.Train, d.Categorical, d.Ordinal, nil
}

func (l *Loader) loadArchive(ctx context.Context, filename string) (train, test *mat.Dense, err error) {
	f, err := l.Cache.Open(ctx, filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	train, test, err = ReadArchive(f, st.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return train, test, nil
}

func (l *Loader) loadMetadata(ctx context.Context, filename string) (*Metadata, error) {
	f, err := l.Cache.Open(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	meta, err := ReadMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return meta, nil
}
