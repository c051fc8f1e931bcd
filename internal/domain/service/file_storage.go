package service

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
)

// ErrFileNotFound is returned when no object exists under the key.
var ErrFileNotFound = errors.New("file not found")

// StoredFile is an object opened for reading. The caller must close Body.
type StoredFile struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	ModTime     time.Time
}

// FileStorage persists uploaded media under slash-separated keys.
type FileStorage interface {
	// Put writes the object, replacing any previous content under the key.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Get opens the object for reading.
	Get(ctx context.Context, key string) (*StoredFile, error)

	// Close releases the underlying bucket.
	Close() error
}
