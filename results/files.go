// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// A Files reads result sets from a sequence of result files.
//
// Each file yields one Set whose Model is the file name without
// directory and ".json" extension. If AllowLabels is true, entries in
// Paths may be of the form label=path, and the label is used as the
// Model instead.
type Files struct {
	// FS is the filesystem to read from. It defaults to the OS
	// filesystem.
	FS afero.Fs

	// Paths is the list of file names to read in.
	Paths []string

	// AllowLabels indicates that custom labels are allowed in
	// Paths.
	AllowLabels bool

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []input

	set Set
	err error
}

type input struct {
	path  string
	model string
}

// ModelName returns the model identifier of a result file path.
func ModelName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}

func (f *Files) init() {
	f.inputs = []input{}
	if f.FS == nil {
		f.FS = afero.NewOsFs()
	}
	for _, path := range f.Paths {
		model := ""
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			model, path = path[:i], path[i+1:]
		} else {
			model = ModelName(path)
		}
		f.inputs = append(f.inputs, input{path, model})
	}
}

// Scan advances to the next file and reports whether a set was read.
// The caller should use the Set method to get it. If Scan reaches the
// end of the file sequence, or if an error occurs, it returns false.
// In this case, the caller should use the Err method to check for
// errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.init()
	}
	if len(f.inputs) == 0 {
		return false
	}
	inp := f.inputs[0]
	f.inputs = f.inputs[1:]

	entries, err := readFile(f.FS, inp.path)
	if err != nil {
		f.err = err
		return false
	}
	f.set = Set{Model: inp.model, Entries: entries}
	return true
}

// Set returns the set that was just read by Scan.
func (f *Files) Set() Set {
	return f.set
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}

func readFile(fs afero.Fs, path string) ([]Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ReadAll reads every set from f.
func ReadAll(f *Files) ([]Set, error) {
	var sets []Set
	for f.Scan() {
		sets = append(sets, f.Set())
	}
	return sets, f.Err()
}

// ReadDir reads every "*.json" result file in dir, in file name order.
func ReadDir(fs afero.Fs, dir string) ([]Set, error) {
	paths, err := afero.Glob(fs, filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return ReadAll(&Files{FS: fs, Paths: paths})
}

// ListDatasets returns the sorted names of the ".npz" dataset archives
// in dir or in its immediate subdirectories.
func ListDatasets(fs afero.Fs, dir string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, pattern := range []string{"*.npz", filepath.Join("*", "*.npz")} {
		paths, err := afero.Glob(fs, filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			name := strings.TrimSuffix(filepath.Base(p), ".npz")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
