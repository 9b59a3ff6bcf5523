package storage

import (
	"context"
	"io"
	"time"

	"github.com/folio/folio/internal/apperr"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = apperr.ErrNotFound

// Object describes a stored file.
type Object struct {
	Key         string
	Size        int64
	Modified    time.Time
	ContentType string
}

// Storage is the blob store behind uploads. Keys use "/" separators.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, *Object, error)
	Delete(ctx context.Context, key string) error
	// List returns the files directly under prefix (one level, no recursion).
	List(ctx context.Context, prefix string) ([]Object, error)
}

// Presigner is implemented by stores that can hand out temporary direct URLs.
type Presigner interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
