package credentials

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Store.Get when no pair is stored.
	ErrNotFound = errors.New("credentials: not found")

	// ErrIncompletePair is returned by Store.Set when one of the two
	// tokens is missing. A partial pair is never persisted.
	ErrIncompletePair = errors.New("credentials: incomplete pair")
)

// Store is persistent storage for the credential pair. Implementations
// must be safe for concurrent use and must never expose a torn pair:
// Get returns either the full pair of a previous Set or ErrNotFound.
type Store interface {
	// Get retrieves the stored pair, or ErrNotFound when absent.
	Get(ctx context.Context) (*Pair, error)

	// Set persists the pair. Incomplete pairs are rejected with
	// ErrIncompletePair.
	Set(ctx context.Context, pair *Pair) error

	// Clear removes the stored pair. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error

	// Name returns the store name for logging
	Name() string
}
