package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Every cache access in the service layer goes through these helpers. The
// policy is deliberate: a cache failure (connectivity, serialization) is
// logged and treated as a miss or a no-op, and the operation continues
// against the source of truth. A cache outage degrades latency, never
// availability.

func cacheGetJSON[T any](ctx context.Context, c ports.Cache, logger *logrus.Logger, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil {
		if logger != nil {
			logger.WithField("key", key).WithError(err).Warn("cache: read failed, falling through")
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		if logger != nil {
			logger.WithField("key", key).WithError(err).Warn("cache: corrupt entry, falling through")
		}
		return nil, false
	}
	return &v, true
}

func cacheSetJSON(ctx context.Context, c ports.Cache, logger *logrus.Logger, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		if logger != nil {
			logger.WithField("key", key).WithError(err).Warn("cache: marshal failed, skipping populate")
		}
		return
	}
	if err := c.Set(ctx, key, b, ttl); err != nil && logger != nil {
		logger.WithField("key", key).WithError(err).Warn("cache: write failed, result served uncached")
	}
}

func cacheDelete(ctx context.Context, c ports.Cache, logger *logrus.Logger, key string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, key); err != nil && logger != nil {
		logger.WithField("key", key).WithError(err).Warn("cache: invalidation failed")
	}
}
