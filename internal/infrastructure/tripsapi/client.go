package tripsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avatarctic/trip-search/internal/core/apperrors"
	"github.com/avatarctic/trip-search/internal/core/domain/trip"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// retryBaseDelay is the unit of the linear backoff: the n-th retry waits
// n times this long.
const retryBaseDelay = 100 * time.Millisecond

// Config configures the upstream trips API client.
type Config struct {
	BaseURL string
	APIKey  string
	// AttemptTimeout bounds each individual HTTP attempt. MaxRetries is the
	// number of additional attempts after the first.
	AttemptTimeout time.Duration
	MaxRetries     int
}

// Client implements ports.TripsProvider against the upstream trips API.
// The upstream is assumed flaky: every call is bounded per attempt, transient
// failures (5xx, network errors, timeouts) are retried with linear backoff,
// and 4xx responses are surfaced immediately with the provider's status and
// body.
type Client struct {
	baseURL        *url.URL
	apiKey         string
	attemptTimeout time.Duration
	maxRetries     int
	httpClient     *http.Client
	logger         *logrus.Logger
}

func NewClient(cfg *Config, logger *logrus.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("trips api base URL must be configured")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid trips api base URL: %w", err)
	}

	return &Client{
		baseURL:        base,
		apiKey:         cfg.APIKey,
		attemptTimeout: cfg.AttemptTimeout,
		maxRetries:     cfg.MaxRetries,
		// Per-attempt deadlines come from the request context.
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// SearchTrips implements ports.TripsProvider.
func (c *Client) SearchTrips(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
	u := c.endpoint("default/trips")
	q := u.Query()
	q.Set("origin", origin)
	q.Set("destination", destination)
	u.RawQuery = q.Encode()

	body, err := c.getWithRetries(ctx, u)
	if err != nil {
		return nil, err
	}
	return decodeTrips(body)
}

// GetTripByID implements ports.TripsProvider. A 404 from the provider means
// the trip does not exist, which is an answer, not a failure.
func (c *Client) GetTripByID(ctx context.Context, tripID string) (*trip.Trip, bool, error) {
	u := c.endpoint("default/trips/" + url.PathEscape(tripID))

	body, err := c.getWithRetries(ctx, u)
	if err != nil {
		var statusErr *apperrors.UpstreamStatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var t trip.Trip
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, false, apperrors.Upstreamf(err, "trips api returned a malformed trip")
	}
	return &t, true, nil
}

// outcome classifies one attempt. The retry loop only ever transitions
// attempting -> success, attempting -> terminal, or attempting -> retryable
// followed by either another attempt or exhaustion.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryable
	outcomeTerminal
)

func (c *Client) getWithRetries(ctx context.Context, u *url.URL) ([]byte, error) {
	attempts := c.maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		body, result, err := c.attempt(ctx, u)
		switch result {
		case outcomeSuccess:
			return body, nil
		case outcomeTerminal:
			return nil, err
		}

		lastErr = err
		if attempt == attempts {
			break
		}

		retriesTotal.WithLabelValues(u.Path).Inc()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"url": u.String(), "attempt": attempt}).WithError(err).Warn("trips api request failed, retrying")
		}

		select {
		case <-time.After(time.Duration(attempt) * retryBaseDelay):
		case <-ctx.Done():
			return nil, apperrors.Upstreamf(ctx.Err(), "trips api request canceled")
		}
	}

	return nil, apperrors.Upstreamf(lastErr, "trips api request failed after %d attempts", attempts)
}

// attempt performs one bounded HTTP call and classifies the result.
// Classification: 2xx success; [400,500) terminal; everything else (5xx,
// network errors, timeouts) retryable.
func (c *Client) attempt(ctx context.Context, u *url.URL) ([]byte, outcome, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, outcomeTerminal, fmt.Errorf("failed to build trips api request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded {
			return nil, outcomeRetryable, apperrors.Upstreamf(nil, "trips api request timed out after %s", c.attemptTimeout)
		}
		return nil, outcomeRetryable, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, outcomeRetryable, fmt.Errorf("failed to read trips api response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, outcomeSuccess, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, outcomeTerminal, &apperrors.UpstreamStatusError{Status: resp.StatusCode, Body: string(body), URL: u.String()}
	default:
		return nil, outcomeRetryable, &apperrors.UpstreamStatusError{Status: resp.StatusCode, Body: string(body), URL: u.String()}
	}
}

func (c *Client) endpoint(path string) *url.URL {
	return c.baseURL.JoinPath(path)
}

// decodeTrips accepts either a bare array of candidates or an object
// wrapping the array under "trips"; the upstream has shipped both.
func decodeTrips(body []byte) ([]trip.Trip, error) {
	var trips []trip.Trip
	if err := json.Unmarshal(body, &trips); err == nil {
		return trips, nil
	}

	var wrapped struct {
		Trips []trip.Trip `json:"trips"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, apperrors.Upstreamf(err, "trips api returned a malformed response")
	}
	return wrapped.Trips, nil
}

var _ ports.TripsProvider = (*Client)(nil)
