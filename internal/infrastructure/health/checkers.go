package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avatarctic/trip-search/internal/core/ports"
	infraDB "github.com/avatarctic/trip-search/internal/infrastructure/db"
	"github.com/google/uuid"
)

// dbHealthChecker wraps the database for health checks.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.DB.PingContext(ctx) }

// cacheHealthChecker probes the configured cache backend with a throwaway
// key, whichever implementation is behind the port.
type cacheHealthChecker struct{ cache ports.Cache }

func (c *cacheHealthChecker) Name() string { return "cache" }
func (c *cacheHealthChecker) Check(ctx context.Context) error {
	key := "ready:probe:" + uuid.NewString()
	if err := c.cache.Set(ctx, key, []byte("1"), time.Second); err != nil {
		return err
	}
	return c.cache.Delete(ctx, key)
}

// tripsAPIHealthChecker verifies the upstream trips API is reachable. A 5xx
// answer counts as unhealthy; anything the server managed to say below that
// means the endpoint is alive.
type tripsAPIHealthChecker struct {
	baseURL    string
	httpClient *http.Client
}

func (t *tripsAPIHealthChecker) Name() string { return "trips_api" }
func (t *tripsAPIHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, t.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("trips api responded with %d", resp.StatusCode)
	}
	return nil
}

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewCacheHealthChecker creates a health checker for the cache backend.
func NewCacheHealthChecker(cache ports.Cache) ports.HealthChecker {
	return &cacheHealthChecker{cache: cache}
}

// NewTripsAPIHealthChecker creates a health checker for the upstream trips API.
func NewTripsAPIHealthChecker(baseURL string) ports.HealthChecker {
	return &tripsAPIHealthChecker{baseURL: baseURL, httpClient: &http.Client{}}
}
