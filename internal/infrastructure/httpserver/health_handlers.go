package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// healthCheck is a liveness probe: the process is up and serving.
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "trip-search",
	})
}

// readyCheck probes every registered dependency in parallel. This is the
// only operation in the service that fans out internally; each probe is
// read-only and independently bounded by the shared timeout.
func (s *Server) readyCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	var mu sync.Mutex
	checks := make(map[string]string)
	ready := true

	g, gctx := errgroup.WithContext(ctx)
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		hc := hc
		g.Go(func() error {
			err := hc.Check(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				checks[hc.Name()] = "error"
				ready = false
			} else {
				checks[hc.Name()] = "ok"
			}
			// Probes never abort each other; failures are reported, not
			// propagated.
			return nil
		})
	}
	_ = g.Wait()

	status := "ok"
	code := http.StatusOK
	if !ready {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
