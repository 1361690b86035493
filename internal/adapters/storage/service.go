// Package storage provides a small interface over S3-compatible object
// storage, used to hand dataset files from the importer to the worker.
package storage

import (
	"context"
	"io"
)

// ObjectStore defines the object storage operations the application needs.
type ObjectStore interface {
	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error

	// Upload stores reader under bucket/key. size may be -1 when unknown.
	Upload(ctx context.Context, ref ObjectRef, contentType string, reader io.Reader, size int64) error

	// Open streams an object. The caller closes the returned reader.
	Open(ctx context.Context, ref ObjectRef) (io.ReadCloser, error)
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}
