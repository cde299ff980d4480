// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger configures the logrus logger shared by the sdgym
// packages and commands.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var root = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Options contains the configuration values of the logger.
type Options struct {
	// Level is a logrus level name. It defaults to "info".
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
	// JSON switches to the JSON formatter.
	JSON bool
}

// Init configures the shared logger. Entries returned by WithNamespace
// before Init are affected too.
func Init(opt Options) error {
	level := opt.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root.SetLevel(lvl)
	if opt.Output != nil {
		root.SetOutput(opt.Output)
	}
	if opt.JSON {
		root.SetFormatter(&logrus.JSONFormatter{})
	} else {
		root.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return nil
}

// WithNamespace returns a logger entry tagged with the given namespace.
func WithNamespace(ns string) *logrus.Entry {
	return root.WithField("nspace", ns)
}
