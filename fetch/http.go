// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// HTTPSource fetches BaseURL+name with a GET request.
type HTTPSource struct {
	BaseURL string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	u := s.BaseURL + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	hc := s.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &StatusError{URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return io.Copy(w, resp.Body)
}

// DirSource copies files out of a local directory.
type DirSource struct {
	Dir string
}

func (s *DirSource) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(w, f)
}
