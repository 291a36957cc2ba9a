package store

import (
	"context"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

// ErrNotFound is returned by Get for keys that were never stored.
var ErrNotFound = internalerr.ErrNotFound

// Store keeps uploaded and processed documents as opaque blobs under
// slash-separated keys ("upload/a.txt", "processed/ner_<id>.txt").
type Store interface {
	Close() error

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// Get returns the data stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns all keys starting with prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}
