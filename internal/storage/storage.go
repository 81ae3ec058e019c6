package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("file not found")

// FileStore keeps uploaded bytes out of the request handlers and the
// database. Stored names are generated, unique, and safe to embed in
// URLs.
type FileStore interface {
	Save(ctx context.Context, originalName string, data []byte) (storedName string, err error)
	Path(storedName string) (string, error)
	Delete(storedName string) error
	PublicURL(storedName string) string
	Dir() string
}
