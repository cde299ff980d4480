// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/sbinet/npyio/npz"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// memSource serves files from a map and counts fetches.
type memSource struct {
	files   map[string][]byte
	fetches map[string]int
	err     error
}

func (s *memSource) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	if s.fetches == nil {
		s.fetches = make(map[string]int)
	}
	s.fetches[name]++
	if s.err != nil {
		// Write a little before failing, like a broken connection.
		w.Write([]byte("partial"))
		return 0, s.err
	}
	data, ok := s.files[name]
	if !ok {
		return 0, os.ErrNotExist
	}
	n, err := w.Write(data)
	return int64(n), err
}

func encodeArchive(t *testing.T, arrays map[string]*mat.Dense) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := npz.NewWriter(&buf)
	for _, name := range []string{TrainArray, TestArray} {
		if m, ok := arrays[name]; ok {
			require.NoError(t, w.Write(name, m))
		}
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const exampleMeta = `{
	"columns": [
		{"name": "A", "type": "categorical", "size": 2, "i2s": ["x", "y"]},
		{"name": "B", "type": "continuous", "min": 0, "max": 1},
		{"name": "label", "type": "continuous"},
		{"name": "C", "type": "ordinal"}
	],
	"problem_type": "binary_classification"
}`

func exampleSource(t *testing.T) *memSource {
	train := mat.NewDense(2, 4, []float64{
		0, 1, 2, 3,
		10, 11, 12, 13,
	})
	test := mat.NewDense(1, 4, []float64{100, 101, 102, 103})
	return &memSource{files: map[string][]byte{
		"example.npz":  encodeArchive(t, map[string]*mat.Dense{TrainArray: train, TestArray: test}),
		"example.json": []byte(exampleMeta),
		"broken.npz":   encodeArchive(t, map[string]*mat.Dense{TrainArray: train}),
		"broken.json":  []byte(exampleMeta),
	}}
}

func newTestLoader(src *memSource) (*Loader, afero.Fs) {
	fs := afero.NewMemMapFs()
	return &Loader{Cache: &Cache{FS: fs, Dir: "/cache", Source: src}}, fs
}

func TestLoad(t *testing.T) {
	src := exampleSource(t)
	l, fs := newTestLoader(src)
	ctx := context.Background()

	d, err := l.Load(ctx, "example")
	require.NoError(t, err)
	assert.Equal(t, "example", d.Name)
	assert.Equal(t, SubsetAll, d.Subset)
	assert.Equal(t, "binary_classification", d.Meta.ProblemType)
	assert.Equal(t, 4, d.NumColumns())
	assert.Equal(t, []int{0}, d.Categorical)
	assert.Equal(t, []int{3}, d.Ordinal)
	assert.Equal(t, 13.0, d.Train.At(1, 3))
	assert.Equal(t, 102.0, d.Test.At(0, 2))

	for _, name := range []string{"/cache/example.npz", "/cache/example.json"} {
		ok, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.True(t, ok, "%s not cached", name)
	}

	// Subsets reuse the cached base files.
	d, err = l.Load(ctx, "example_categorical")
	require.NoError(t, err)
	assert.Equal(t, SubsetCategorical, d.Subset)
	assert.Equal(t, []Column{{"A", Categorical}, {"label", Continuous}, {"C", Ordinal}}, d.Meta.Columns)
	assert.Equal(t, []int{0}, d.Categorical)
	assert.Equal(t, []int{2}, d.Ordinal)
	assert.Equal(t, []float64{10, 12, 13}, mat.Row(nil, 1, d.Train))

	train, cat, ord, err := l.LoadTrain(ctx, "example_numeric")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, mat.Row(nil, 0, train))
	assert.Empty(t, cat)
	assert.Empty(t, ord)

	assert.Equal(t, 1, src.fetches["example.npz"])
	assert.Equal(t, 1, src.fetches["example.json"])
}

func TestLoadMissingArray(t *testing.T) {
	l, _ := newTestLoader(exampleSource(t))
	_, err := l.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"test"`)
}

func TestLoadNotFound(t *testing.T) {
	l, fs := newTestLoader(exampleSource(t))
	_, err := l.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := afero.ReadDir(fs, "/cache")
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download left files behind")
}

func TestCacheFailedDownload(t *testing.T) {
	boom := errors.New("connection reset")
	src := &memSource{err: boom}
	fs := afero.NewMemMapFs()
	c := &Cache{FS: fs, Dir: "/cache", Source: src}

	_, err := c.Open(context.Background(), "adult.npz")
	assert.ErrorIs(t, err, boom)

	entries, err := afero.ReadDir(fs, "/cache")
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download left files behind")

	// Nothing was cached, so the next open tries again.
	_, err = c.Open(context.Background(), "adult.npz")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, src.fetches["adult.npz"])
}

func TestCacheHit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cache/a.json", []byte("cached"), 0o644))
	c := &Cache{FS: fs, Dir: "/cache"}

	f, err := c.Open(context.Background(), "a.json")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))

	// Without a source, misses are errors.
	_, err = c.Open(context.Background(), "b.json")
	assert.Error(t, err)
}
