package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks already-processed operations so that retried
// deliveries (payment gateway callbacks, event redeliveries) are applied
// at most once.
type IdempotencyStore interface {
	// MarkProcessed atomically marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already
	// processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)
}
