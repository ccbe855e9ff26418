package providers

import (
	"context"
)

// CacheProvider is the port for the response cache and rate-limit counters.
// The service degrades gracefully when no implementation is wired in.
type CacheProvider interface {
	// Get retrieves a value; returns an error on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL in seconds.
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Exists reports whether a key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
