package ports

import (
	"context"
	"time"
)

// Cache defines a minimal key-value cache contract.
// Implementations must treat an unknown or expired key identically (absent,
// not an error) and should degrade gracefully so that application logic can
// fall back to the primary datastore. Callers treat every operation as
// best-effort: a cache error is logged at the call site and never propagated
// as a request failure.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error

	// SupportsShutdown reports whether the implementation holds resources
	// that need an explicit release at process exit. Shutdown is a no-op
	// when it returns false.
	SupportsShutdown() bool
	Shutdown(ctx context.Context) error
}
