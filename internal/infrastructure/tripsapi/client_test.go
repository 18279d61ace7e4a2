package tripsapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avatarctic/trip-search/internal/core/apperrors"
	"github.com/avatarctic/trip-search/internal/infrastructure/tripsapi"
	"github.com/sirupsen/logrus"
)

func newClient(t *testing.T, baseURL string, maxRetries int) *tripsapi.Client {
	t.Helper()
	c, err := tripsapi.NewClient(&tripsapi.Config{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		AttemptTimeout: 2 * time.Second,
		MaxRetries:     maxRetries,
	}, logrus.New())
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return c
}

func TestSearchTrips_RecoversFromTransientServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/default/trips" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"t1","origin":"JFK","destination":"LAX","cost":100,"duration":50,"type":"flight","display_name":"JFK to LAX"}]`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 3)
	trips, err := c.SearchTrips(context.Background(), "JFK", "LAX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	if len(trips) != 1 || trips[0].ID != "t1" {
		t.Fatalf("unexpected trips: %+v", trips)
	}
}

func TestSearchTrips_QueryParametersForwarded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("origin") != "JFK" || r.URL.Query().Get("destination") != "LAX" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 0)
	if _, err := c.SearchTrips(context.Background(), "JFK", "LAX"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchTrips_AcceptsWrappedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"trips":[{"id":"t7","cost":1,"duration":1}]}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 0)
	trips, err := c.SearchTrips(context.Background(), "JFK", "LAX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != "t7" {
		t.Fatalf("unexpected trips: %+v", trips)
	}
}

func TestSearchTrips_ClientErrorIsTerminal(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Bad Request"}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 3)
	_, err := c.SearchTrips(context.Background(), "JFK", "LAX")
	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("a 4xx must not be retried, got %d attempts", got)
	}

	var statusErr *apperrors.UpstreamStatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadRequest {
		t.Fatalf("expected an UpstreamStatusError with status 400, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected the error to match ErrUpstream, got %v", err)
	}
}

func TestSearchTrips_ExhaustedRetriesReportAttemptCount(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 1)
	_, err := c.SearchTrips(context.Background(), "JFK", "LAX")
	if !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected ErrUpstream after exhaustion, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected maxRetries+1 attempts, got %d", got)
	}
}

func TestGetTripByID_NotFoundIsAbsenceNotFailure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/default/trips/ghost" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 3)
	tr, ok, err := c.GetTripByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("a 404 must not be an error: %v", err)
	}
	if ok || tr != nil {
		t.Fatalf("expected absence, got %+v", tr)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("a 404 must not be retried, got %d attempts", got)
	}
}

func TestGetTripByID_ReturnsTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t1","origin":"JFK","destination":"LAX","cost":100,"duration":50}`))
	}))
	defer ts.Close()

	c := newClient(t, ts.URL, 0)
	tr, ok, err := c.GetTripByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || tr.ID != "t1" || tr.Cost != 100 {
		t.Fatalf("unexpected trip: %+v", tr)
	}
}

func TestGetWithRetries_AttemptTimeoutIsRetryable(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c, err := tripsapi.NewClient(&tripsapi.Config{
		BaseURL:        ts.URL,
		AttemptTimeout: 100 * time.Millisecond,
		MaxRetries:     2,
	}, logrus.New())
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}

	if _, err := c.SearchTrips(context.Background(), "JFK", "LAX"); err != nil {
		t.Fatalf("expected recovery after the slow attempt: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got < 2 {
		t.Fatalf("expected the timed-out attempt to be retried, got %d attempts", got)
	}
}

func TestGetWithRetries_CanceledContextStopsBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	c := newClient(t, ts.URL, 10)
	start := time.Now()
	_, err := c.SearchTrips(ctx, "JFK", "LAX")
	if err == nil {
		t.Fatal("expected an error after cancellation")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cancellation did not interrupt the backoff, took %s", elapsed)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := tripsapi.NewClient(&tripsapi.Config{}, logrus.New()); err == nil {
		t.Fatal("expected an error for a missing base URL")
	}
}
