// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sdgym/sdgym/fetch"
	"github.com/sdgym/sdgym/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// A Cache is a local directory of dataset files backed by a remote
// Source. Files are downloaded on first use and reused afterwards.
type Cache struct {
	FS  afero.Fs
	Dir string

	// Source is consulted on a cache miss. If it is nil, misses
	// are errors.
	Source fetch.Source

	// Log defaults to the "dataset" namespace logger.
	Log *logrus.Entry
}

// NewCache returns a Cache rooted at dir on the OS filesystem.
func NewCache(dir string, src fetch.Source) *Cache {
	return &Cache{FS: afero.NewOsFs(), Dir: dir, Source: src}
}

func (c *Cache) log() *logrus.Entry {
	if c.Log != nil {
		return c.Log
	}
	return logger.WithNamespace("dataset")
}

// Path returns the cache path of filename.
func (c *Cache) Path(filename string) string {
	return filepath.Join(c.Dir, filename)
}

// Open returns the cached copy of filename, downloading it first if
// it is not cached yet.
//
// Downloads are written to a temporary file in the cache directory
// and renamed into place once complete, so an interrupted download
// never leaves a partial cache entry.
func (c *Cache) Open(ctx context.Context, filename string) (afero.File, error) {
	path := c.Path(filename)
	f, err := c.FS.Open(path)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := c.download(ctx, filename, path); err != nil {
		return nil, err
	}
	return c.FS.Open(path)
}

func (c *Cache) download(ctx context.Context, filename, path string) (err error) {
	if c.Source == nil {
		return fmt.Errorf("%s is not cached and no remote source is configured", filename)
	}
	if err := c.FS.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(c.FS, c.Dir, filename+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			c.FS.Remove(tmp.Name())
		}
	}()

	c.log().Infof("Downloading file %s to %s", filename, path)
	n, err := c.Source.Fetch(ctx, filename, tmp)
	if err != nil {
		return fmt.Errorf("download %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = c.FS.Rename(tmp.Name(), path); err != nil {
		return err
	}
	c.log().Debugf("Downloaded %s (%s)", filename, humanize.Bytes(uint64(n)))
	return nil
}
