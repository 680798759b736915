// Package memory provides an in-memory storage.FileStore for tests.
package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/tunehub/tunehub-server/pkg/catalog/storage"
)

type object struct {
	data        []byte
	contentType string
	updatedAt   time.Time
}

// Backend is an in-memory implementation of storage.FileStore.
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{objects: make(map[string]object)}
}

func (b *Backend) Upload(ctx context.Context, objectKey string, contentType string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectKey] = object{data: data, contentType: contentType, updatedAt: time.Now().UTC()}
	return nil
}

func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, ok := b.objects[objectKey]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// GetUploadURL is unsupported; callers must use Upload directly.
func (b *Backend) GetUploadURL(ctx context.Context, objectKey string) (string, error) {
	return "", errors.New("direct upload required for memory backend")
}

// GetDownloadURL is unsupported; callers must use Download directly.
func (b *Backend) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	return "", errors.New("direct download required for memory backend")
}

func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.objects[objectKey]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(b.objects, objectKey)
	return nil
}

func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*storage.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obj, ok := b.objects[objectKey]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &storage.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UpdatedAt:   obj.updatedAt,
	}, nil
}
