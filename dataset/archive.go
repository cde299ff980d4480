// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// Array names inside a dataset archive.
const (
	TrainArray = "train"
	TestArray  = "test"
)

// ReadArchive decodes the train and test matrices from an .npz
// archive of the given size.
func ReadArchive(r io.ReaderAt, size int64) (train, test *mat.Dense, err error) {
	zr, err := npz.NewReader(r, size)
	if err != nil {
		return nil, nil, fmt.Errorf("read npz: %w", err)
	}
	if train, err = readArray(zr, TrainArray); err != nil {
		return nil, nil, err
	}
	if test, err = readArray(zr, TestArray); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

func readArray(zr *npz.Reader, name string) (*mat.Dense, error) {
	key := ""
	for _, k := range zr.Keys() {
		if strings.TrimSuffix(k, ".npy") == name {
			key = k
			break
		}
	}
	if key == "" {
		return nil, fmt.Errorf("npz: no %q array", name)
	}
	var m mat.Dense
	if err := zr.Read(key, &m); err != nil {
		return nil, fmt.Errorf("npz: read %q: %w", name, err)
	}
	if r, c := m.Dims(); r == 0 || c == 0 {
		return nil, fmt.Errorf("npz: %q array is empty", name)
	}
	return &m, nil
}

// ReadMetadata decodes a dataset metadata document.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	var meta Metadata
	if err := json.NewDecoder(r).Decode(&meta); err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	return &meta, nil
}
