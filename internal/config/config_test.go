// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("sdgym-summary", pflag.ContinueOnError)
	flags.String("result", "output/__result__", "")
	flags.String("summary", "output/__summary__", "")
	flags.String("data", "data", "")
	flags.String("format", "pdf", "")
	flags.String("db-driver", "sqlite3", "")
	flags.String("db", "", "")
	flags.String("log-level", "info", "")
	flags.Bool("quiet", false, "")
	return flags
}

func TestSummaryDefaults(t *testing.T) {
	v, err := New(afero.NewMemMapFs(), summaryFlags(), "")
	require.NoError(t, err)
	s, err := LoadSummary(v)
	require.NoError(t, err)
	assert.Equal(t, &Summary{
		Result:   "output/__result__",
		Summary:  "output/__summary__",
		Data:     "data",
		Format:   "pdf",
		DBDriver: "sqlite3",
		LogLevel: "info",
	}, s)
}

func TestSummaryPrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "sdgym.yaml", []byte("format: svg\ndata: /srv/data\nresult: /srv/results\n"), 0o644))
	t.Setenv("SDGYM_RESULT", "/env/results")
	t.Setenv("SDGYM_QUIET", "true")
	t.Setenv("SDGYM_DB", "archive.db")

	flags := summaryFlags()
	require.NoError(t, flags.Parse([]string{"--format=png"}))
	v, err := New(fs, flags, "")
	require.NoError(t, err)
	s, err := LoadSummary(v)
	require.NoError(t, err)

	// Flag beats config file.
	assert.Equal(t, "png", s.Format)
	// Config file beats flag default.
	assert.Equal(t, "/srv/data", s.Data)
	// Environment beats config file.
	assert.Equal(t, "/env/results", s.Result)
	assert.True(t, s.Quiet)
	assert.Equal(t, "archive.db", s.DB)
}

func TestExplicitConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sdgym.json", []byte(`{"summary": "/tmp/charts"}`), 0o644))

	v, err := New(fs, summaryFlags(), "/etc/sdgym.json")
	require.NoError(t, err)
	s, err := LoadSummary(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/charts", s.Summary)

	_, err = New(fs, summaryFlags(), "/etc/missing.yaml")
	assert.Error(t, err)
}

func TestSummaryDBWithoutDriver(t *testing.T) {
	t.Setenv("SDGYM_DB", "archive.db")
	t.Setenv("SDGYM_DB_DRIVER", "")
	flags := summaryFlags()
	require.NoError(t, flags.Parse([]string{"--db-driver="}))
	v, err := New(afero.NewMemMapFs(), flags, "")
	require.NoError(t, err)
	_, err = LoadSummary(v)
	assert.Error(t, err)
}

func TestDatasetDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("sdgym-dataset", pflag.ContinueOnError)
	flags.String("cache", "", "")
	flags.String("base-url", "http://example.com/datasets/", "")
	flags.Bool("benchmark", false, "")
	require.NoError(t, flags.Parse([]string{"--benchmark"}))

	v, err := New(afero.NewMemMapFs(), flags, "")
	require.NoError(t, err)
	d, err := LoadDataset(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheDir, d.Cache)
	assert.Equal(t, "http://example.com/datasets/", d.BaseURL)
	assert.True(t, d.Benchmark)
}
