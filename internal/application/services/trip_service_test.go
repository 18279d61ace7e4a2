package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	impl "github.com/avatarctic/trip-search/internal/application/services"
	"github.com/avatarctic/trip-search/internal/core/domain/trip"
	"github.com/sirupsen/logrus"
)

func TestSearchTrips_CacheMissFetchesSortsAndPopulates(t *testing.T) {
	providerCalls := 0
	provider := &providerMock{SearchTripsFn: func(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
		providerCalls++
		if origin != "JFK" || destination != "LAX" {
			t.Fatalf("provider received non-normalized query %s -> %s", origin, destination)
		}
		return []trip.Trip{
			{ID: "t2", Cost: 800, Duration: 900},
			{ID: "t1", Cost: 600, Duration: 700},
		}, nil
	}}

	var setKey string
	var setValue []byte
	cache := &cacheMock{SetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		setKey = key
		setValue = value
		if ttl != 2*time.Minute {
			t.Fatalf("unexpected ttl: %s", ttl)
		}
		return nil
	}}

	svc := impl.NewTripService(provider, cache, impl.NewTripSorter(), 2*time.Minute, logrus.New())
	out, err := svc.SearchTrips(context.Background(), " jfk ", "lax", trip.SortCheapest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if providerCalls != 1 {
		t.Fatalf("expected one provider call, got %d", providerCalls)
	}
	assertOrder(t, out, "t1", "t2")
	if setKey != "search:JFK:LAX:cheapest" {
		t.Fatalf("unexpected cache key: %s", setKey)
	}

	var cached []trip.Trip
	if err := json.Unmarshal(setValue, &cached); err != nil {
		t.Fatalf("cache value is not the serialized result: %v", err)
	}
	assertOrder(t, cached, "t1", "t2")
}

func TestSearchTrips_CacheHitSkipsProvider(t *testing.T) {
	cachedTrips := []trip.Trip{{ID: "t9", Cost: 1, Duration: 1}}
	payload, _ := json.Marshal(cachedTrips)

	cache := &cacheMock{GetFn: func(ctx context.Context, key string) ([]byte, bool, error) {
		if key != "search:JFK:LAX:fastest" {
			t.Fatalf("unexpected cache key: %s", key)
		}
		return payload, true, nil
	}}
	provider := &providerMock{SearchTripsFn: func(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
		t.Fatal("provider must not be called on a cache hit")
		return nil, nil
	}}

	svc := impl.NewTripService(provider, cache, impl.NewTripSorter(), time.Minute, logrus.New())
	out, err := svc.SearchTrips(context.Background(), "JFK", "LAX", trip.SortFastest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, out, "t9")
}

func TestSearchTrips_CaseInsensitiveQueriesShareOneKey(t *testing.T) {
	keys := map[string]int{}
	cache := &cacheMock{SetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		keys[key]++
		return nil
	}}
	provider := &providerMock{SearchTripsFn: func(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
		return []trip.Trip{{ID: "t1"}}, nil
	}}

	svc := impl.NewTripService(provider, cache, impl.NewTripSorter(), time.Minute, logrus.New())
	for _, q := range [][2]string{{"jfk", "lax"}, {"JFK", "LAX"}, {"Jfk", "Lax"}} {
		if _, err := svc.SearchTrips(context.Background(), q[0], q[1], trip.SortCheapest); err != nil {
			t.Fatalf("unexpected error for %v: %v", q, err)
		}
	}

	if len(keys) != 1 {
		t.Fatalf("expected one cache key for equivalent queries, got %v", keys)
	}
	if keys["search:JFK:LAX:cheapest"] != 3 {
		t.Fatalf("expected all writes on the normalized key, got %v", keys)
	}
}

func TestSearchTrips_FailingCacheStillServes(t *testing.T) {
	cacheErr := errors.New("redis down")
	cache := &cacheMock{
		GetFn: func(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, cacheErr },
		SetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error { return cacheErr },
	}
	provider := &providerMock{SearchTripsFn: func(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
		return []trip.Trip{{ID: "t1", Cost: 10, Duration: 10}}, nil
	}}

	svc := impl.NewTripService(provider, cache, impl.NewTripSorter(), time.Minute, logrus.New())
	out, err := svc.SearchTrips(context.Background(), "JFK", "LAX", trip.SortCheapest)
	if err != nil {
		t.Fatalf("cache failure must not fail the search: %v", err)
	}
	assertOrder(t, out, "t1")
}

func TestSearchTrips_CorruptCacheEntryFallsThrough(t *testing.T) {
	cache := &cacheMock{GetFn: func(ctx context.Context, key string) ([]byte, bool, error) {
		return []byte("{not json"), true, nil
	}}
	provider := &providerMock{SearchTripsFn: func(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
		return []trip.Trip{{ID: "t1"}}, nil
	}}

	svc := impl.NewTripService(provider, cache, impl.NewTripSorter(), time.Minute, logrus.New())
	out, err := svc.SearchTrips(context.Background(), "JFK", "LAX", trip.SortCheapest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, out, "t1")
}

func TestSearchTrips_ProviderErrorPropagates(t *testing.T) {
	providerErr := errors.New("upstream exploded")
	provider := &providerMock{SearchTripsFn: func(ctx context.Context, origin, destination string) ([]trip.Trip, error) {
		return nil, providerErr
	}}

	svc := impl.NewTripService(provider, &cacheMock{}, impl.NewTripSorter(), time.Minute, logrus.New())
	_, err := svc.SearchTrips(context.Background(), "JFK", "LAX", trip.SortCheapest)
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
