// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sdgym-summary charts synthesizer benchmark results.
//
// Usage:
//
//	sdgym-summary [--result dir] [--summary dir] [--data dir] [--format pdf|png|svg] [label=]file.json...
//
// It reads every "<model>.json" result file in the result directory,
// plus any result files named on the command line, and the dataset
// archives in the data directory. It writes to the summary directory
// a "coverage" chart, giving for each model the fraction of datasets
// it has results for, and one "<dataset>" chart per dataset giving
// the mean of each metric for each model. A plain-text version of the
// same summary is printed unless --quiet is given.
//
// With --db, the result sets are first merged into a SQL archive and
// the charts are drawn from everything the archive holds, so results
// of separate runs can be summarized together.
//
// Every flag can also be set with an SDGYM_<FLAG> environment
// variable, such as SDGYM_DB_DRIVER, or in a sdgym.yaml file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sdgym/sdgym/internal/config"
	"github.com/sdgym/sdgym/internal/logger"
	"github.com/sdgym/sdgym/results"
	"github.com/sdgym/sdgym/storage/db"
	_ "github.com/sdgym/sdgym/storage/db/sqlite3"
	"github.com/sdgym/sdgym/summary"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var log = logger.WithNamespace("sdgym-summary")

func newRootCmd(fs afero.Fs) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "sdgym-summary [flags] [label=]file.json...",
		Short: "Chart synthesizer benchmark results",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(fs, cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			cfg, err := config.LoadSummary(v)
			if err != nil {
				return err
			}
			if err := logger.Init(logger.Options{Level: cfg.LogLevel, Output: cmd.ErrOrStderr()}); err != nil {
				return err
			}
			return run(cmd.Context(), fs, cfg, args, cmd.OutOrStdout())
		},
		// Do not display usage on error
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "configuration `file` (default ./sdgym.yaml)")
	flags.String("result", "output/__result__", "`dir`ectory of <model>.json result files")
	flags.String("summary", "output/__summary__", "output `dir`ectory for the charts")
	flags.String("data", "data", "`dir`ectory of <dataset>.npz archives")
	flags.String("format", string(summary.PDF), "chart `format`: pdf, png or svg")
	flags.String("db-driver", "sqlite3", "archive database `driver`: sqlite3 or mysql")
	flags.String("db", "", "archive results in the database at `dsn` and chart the whole archive")
	flags.String("log-level", "info", "log `level`")
	flags.BoolP("quiet", "q", false, "do not print the text summary")
	return cmd
}

func run(ctx context.Context, fs afero.Fs, cfg *config.Summary, args []string, out io.Writer) error {
	format, err := summary.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	sets, err := results.ReadDir(fs, cfg.Result)
	if err != nil {
		return err
	}
	extra, err := results.ReadAll(&results.Files{FS: fs, Paths: args, AllowLabels: true})
	if err != nil {
		return err
	}
	sets = append(sets, extra...)
	log.Debugf("Read %d result files", len(sets))

	if cfg.DB != "" {
		if sets, err = archive(ctx, cfg, sets); err != nil {
			return err
		}
	}

	datasets, err := results.ListDatasets(fs, cfg.Data)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		log.Warnf("No datasets in %s", cfg.Data)
	}

	w := &summary.Writer{FS: fs, Dir: cfg.Summary, Format: format}
	report, err := w.Write(datasets, sets)
	if report == nil {
		return err
	}
	for _, file := range report.Files {
		log.Infof("Wrote %s", file)
	}
	if !cfg.Quiet {
		if err := report.WriteText(out); err != nil {
			return err
		}
	}
	return err
}

// archive imports sets into the configured database and returns every
// set it holds.
func archive(ctx context.Context, cfg *config.Summary, sets []results.Set) ([]results.Set, error) {
	d, err := db.OpenSQL(cfg.DBDriver, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer d.Close()
	for _, set := range sets {
		if err := d.ImportSet(ctx, set); err != nil {
			return nil, fmt.Errorf("archive %s: %w", set.Model, err)
		}
	}
	n, err := d.CountEntries()
	if err != nil {
		return nil, err
	}
	log.Infof("Archive holds %d entries", n)
	return d.Sets(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdgym-summary: %v\n", err)
		os.Exit(1)
	}
}
