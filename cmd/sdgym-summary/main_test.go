// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gaussianJSON = `[
	{"dataset": "adult", "step": 0, "performance": [{"name": "DecisionTree", "accuracy": 0.8, "f1": 0.6}]},
	{"dataset": "census", "step": 0, "performance": [{"name": "DecisionTree", "accuracy": 0.9, "f1": null}]}
]`

const uniformJSON = `[
	{"dataset": "adult", "step": 0, "performance": [{"name": "DecisionTree", "accuracy": 0.4, "f1": 0.1}]}
]`

func testFS(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	for name, data := range map[string]string{
		"result/gaussian.json": gaussianJSON,
		"extra/u.json":         uniformJSON,
		"data/adult.npz":       "",
		"data/sub/census.npz":  "",
		"data/covtype.npz":     "",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(data), 0o644))
	}
	return fs
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	cmd := newRootCmd(fs)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary(t *testing.T) {
	fs := testFS(t)
	out, err := execute(t, fs, "--result=result", "--summary=out", "--data=data", "--format=svg", "uniform=extra/u.json")
	require.NoError(t, err)

	for _, name := range []string{"out/coverage.svg", "out/adult.svg", "out/census.svg"} {
		ok, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
	ok, err := afero.Exists(fs, "out/covtype.svg")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, out, "gaussian")
	assert.Contains(t, out, "uniform")
	assert.Contains(t, out, "2/3")
}

func TestSummaryArchive(t *testing.T) {
	fs := testFS(t)
	out, err := execute(t, fs, "--result=result", "--summary=out", "--data=data", "--format=png",
		"--db-driver=sqlite3", "--db=:memory:", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)

	ok, err := afero.Exists(fs, "out/census.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSummaryBadFormat(t *testing.T) {
	_, err := execute(t, testFS(t), "--result=result", "--data=data", "--format=gif")
	assert.Error(t, err)
}

func TestSummaryBadResult(t *testing.T) {
	fs := testFS(t)
	require.NoError(t, afero.WriteFile(fs, "result/broken.json", []byte("{"), 0o644))
	_, err := execute(t, fs, "--result=result", "--data=data")
	assert.Error(t, err)
}
