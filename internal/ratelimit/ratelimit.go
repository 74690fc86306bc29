package ratelimit

import "context"

// Limiter answers whether a caller identified by key may proceed.
type Limiter interface {
	// Allow reports whether the caller is within its budget.
	Allow(ctx context.Context, key string) (bool, error)

	// Close closes the limiter's backing connection.
	Close() error
}
