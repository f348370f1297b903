// Package storage holds the image bucket.  The S3 implementation talks to
// Cloudflare R2 or MinIO; the in-memory one backs local runs and tests.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned when a key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// Metadata keys stored with every upload.
const (
	MetaOriginalFilename = "original-filename"
	MetaUploadedAt       = "uploaded-at"
)

// Object describes one stored key.
type Object struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// ObjectStore is the subset of bucket operations the image endpoints use.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	// Get returns the object body; the caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, Object, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
