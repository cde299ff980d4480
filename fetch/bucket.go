// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/api/option"
)

const defaultS3Endpoint = "s3.amazonaws.com"

// S3Source fetches objects from an S3 bucket.
type S3Source struct {
	Bucket, Prefix string
	client         *minio.Client
}

func newS3Source(bucket, prefix string, opts Options) (*S3Source, error) {
	endpoint := opts.S3Endpoint
	if endpoint == "" {
		endpoint = defaultS3Endpoint
	}
	creds := credentials.NewEnvAWS()
	if opts.Anonymous {
		creds = credentials.NewStaticV4("", "", "")
	}
	c, err := minio.New(endpoint, &minio.Options{Creds: creds, Secure: true})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return &S3Source{Bucket: bucket, Prefix: prefix, client: c}, nil
}

func (s *S3Source) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	obj, err := s.client.GetObject(ctx, s.Bucket, s.Prefix+name, minio.GetObjectOptions{})
	if err != nil {
		return 0, err
	}
	defer obj.Close()
	return io.Copy(w, obj)
}

// GCSSource fetches objects from a Google Cloud Storage bucket.
type GCSSource struct {
	Bucket, Prefix string
	client         *storage.Client
}

func newGCSSource(ctx context.Context, bucket, prefix string, opts Options) (*GCSSource, error) {
	var copts []option.ClientOption
	if opts.Anonymous {
		copts = append(copts, option.WithoutAuthentication())
	}
	c, err := storage.NewClient(ctx, copts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSSource{Bucket: bucket, Prefix: prefix, client: c}, nil
}

func (s *GCSSource) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	r, err := s.client.Bucket(s.Bucket).Object(s.Prefix + name).NewReader(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return io.Copy(w, r)
}
