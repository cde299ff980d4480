// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sdgym-dataset downloads benchmark datasets and describes them.
//
// Usage:
//
//	sdgym-dataset [--cache dir] [--base-url url] [--benchmark] name...
//
// Each name is a dataset name, optionally followed by "_categorical"
// or "_numeric" to select only those columns. The dataset files are
// fetched from the base URL into the cache directory on first use.
// The base URL may be an http, https, s3, gs or file URL.
//
// For each dataset, sdgym-dataset prints the shape of the training
// matrix and the indices of the categorical and ordinal columns. With
// --benchmark it also prints the shape of the test matrix and the
// name and type of every column.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sdgym/sdgym/dataset"
	"github.com/sdgym/sdgym/fetch"
	"github.com/sdgym/sdgym/internal/config"
	"github.com/sdgym/sdgym/internal/logger"
	"github.com/sdgym/sdgym/internal/texttab"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRootCmd(fs afero.Fs) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "sdgym-dataset [flags] name...",
		Short: "Download and describe benchmark datasets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(fs, cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			cfg, err := config.LoadDataset(v)
			if err != nil {
				return err
			}
			if err := logger.Init(logger.Options{Level: cfg.LogLevel, Output: cmd.ErrOrStderr()}); err != nil {
				return err
			}
			src, err := fetch.NewSource(cmd.Context(), cfg.BaseURL, fetch.Options{
				Anonymous:  cfg.Anonymous,
				S3Endpoint: cfg.S3Endpoint,
			})
			if err != nil {
				return err
			}
			l := &dataset.Loader{Cache: &dataset.Cache{FS: fs, Dir: cfg.Cache, Source: src}}
			return run(cmd.Context(), l, cfg.Benchmark, args, cmd.OutOrStdout())
		},
		// Do not display usage on error
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "configuration `file` (default ./sdgym.yaml)")
	flags.String("cache", "", "dataset cache `dir`ectory (default "+config.DefaultCacheDir+")")
	flags.String("base-url", fetch.DefaultBaseURL, "`url` to download datasets from")
	flags.Bool("benchmark", false, "load the test matrix and metadata too")
	flags.Bool("anonymous", true, "do not look up s3 or gs credentials")
	flags.String("s3-endpoint", "", "s3 endpoint `host` (default s3.amazonaws.com)")
	flags.String("log-level", "info", "log `level`")
	return cmd
}

func run(ctx context.Context, l *dataset.Loader, benchmark bool, names []string, out io.Writer) error {
	var tab texttab.Table
	if benchmark {
		tab.Row().Cell("dataset").Cell("subset").Cell("train", texttab.Right).Cell("test", texttab.Right).Cell("categorical").Cell("ordinal")
	} else {
		tab.Row().Cell("dataset").Cell("train", texttab.Right).Cell("categorical").Cell("ordinal")
	}
	var loaded []*dataset.Dataset
	for _, name := range names {
		if !benchmark {
			train, cat, ord, err := l.LoadTrain(ctx, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			tab.Row().Cell(name).Cell(shape(train.Dims()), texttab.Right).Cellf("%v", cat).Cellf("%v", ord)
			continue
		}
		d, err := l.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		tab.Row().Cell(d.Name).Cell(d.Subset.String()).
			Cell(shape(d.Train.Dims()), texttab.Right).
			Cell(shape(d.Test.Dims()), texttab.Right).
			Cellf("%v", d.Categorical).Cellf("%v", d.Ordinal)
		loaded = append(loaded, d)
	}
	if err := tab.Format(out); err != nil {
		return err
	}

	for _, d := range loaded {
		if _, err := fmt.Fprintf(out, "\n%s (%s)\n", d.Name, d.Subset); err != nil {
			return err
		}
		var ct texttab.Table
		for i, c := range d.Meta.Columns {
			ct.Row().Cellf("%d", i).Cell(c.Name).Cell(c.Type)
		}
		if err := ct.Format(out); err != nil {
			return err
		}
	}
	return nil
}

func shape(r, c int) string {
	return fmt.Sprintf("%d×%d", r, c)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdgym-dataset: %v\n", err)
		os.Exit(1)
	}
}
