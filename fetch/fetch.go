// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch retrieves dataset files from a remote location.
//
// A Source is selected from the scheme of a base URL:
//
//	http://host/path/   plain HTTP(S) GET of base+name
//	s3://bucket/prefix/ S3 object, via minio-go
//	gs://bucket/prefix/ Google Cloud Storage object
//	file:///dir/        a local mirror directory
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// DefaultBaseURL is where the benchmark datasets are published.
const DefaultBaseURL = "http://sdgym.s3.amazonaws.com/datasets/"

// A Source fetches named files.
type Source interface {
	// Fetch copies the file called name to w and returns the
	// number of bytes written.
	Fetch(ctx context.Context, name string, w io.Writer) (int64, error)
}

// Options configures the sources created by NewSource.
type Options struct {
	// Anonymous disables credential lookup for the S3 and GCS
	// sources. The public dataset buckets need no credentials.
	Anonymous bool

	// S3Endpoint overrides the S3 endpoint. It defaults to
	// s3.amazonaws.com.
	S3Endpoint string
}

// An UnsupportedSchemeError is returned by NewSource for a base URL
// whose scheme has no Source.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported dataset source scheme %q", e.Scheme)
}

// A StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// NewSource returns the Source for baseURL.
func NewSource(ctx context.Context, baseURL string, opts Options) (Source, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		return &HTTPSource{BaseURL: withSlash(baseURL)}, nil
	case "s3":
		return newS3Source(u.Host, prefix(u), opts)
	case "gs":
		return newGCSSource(ctx, u.Host, prefix(u), opts)
	case "file":
		return &DirSource{Dir: u.Path}, nil
	}
	return nil, &UnsupportedSchemeError{u.Scheme}
}

// prefix returns the object key prefix of a bucket URL.
func prefix(u *url.URL) string {
	p := strings.TrimPrefix(u.Path, "/")
	if p == "" {
		return ""
	}
	return withSlash(p)
}

func withSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
