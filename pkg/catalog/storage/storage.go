// Package storage defines the blob storage interface used for media
// files: audio tracks, cover art, and artist avatars. Backends live in
// subpackages; the in-memory backend is intended for tests and the S3
// backend for production (including MinIO and other S3-compatible
// services).
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned when an object key has no stored blob.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectMeta describes a stored blob.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
	UpdatedAt   time.Time
}

// FileStore is the interface media storage backends implement.
type FileStore interface {
	// Upload stores the blob read from reader under objectKey.
	Upload(ctx context.Context, objectKey string, contentType string, reader io.Reader) error

	// Download opens the blob stored under objectKey. The caller must
	// close the returned reader.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// GetUploadURL returns a presigned URL a client can PUT the blob
	// to, for backends that support direct client upload.
	GetUploadURL(ctx context.Context, objectKey string) (string, error)

	// GetDownloadURL returns a presigned URL for fetching the blob,
	// with a Content-Disposition filename when downloadFilename is
	// non-empty.
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)

	// Delete removes the blob stored under objectKey.
	Delete(ctx context.Context, objectKey string) error

	// GetObjectMeta retrieves metadata for a stored blob.
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}
