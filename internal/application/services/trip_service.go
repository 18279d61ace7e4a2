package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avatarctic/trip-search/internal/core/domain/trip"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TripService answers search queries cache-aside: hit returns the cached,
// already-sorted result verbatim; miss fetches from the provider, sorts, and
// best-effort populates the cache. Identical normalized queries are
// deterministic as long as the upstream hasn't changed and the entry hasn't
// expired.
type TripService struct {
	provider ports.TripsProvider
	cache    ports.Cache
	sorter   *TripSorter
	ttl      time.Duration
	logger   *logrus.Logger
	sf       singleflight.Group
}

func NewTripService(provider ports.TripsProvider, cache ports.Cache, sorter *TripSorter, ttl time.Duration, logger *logrus.Logger) ports.TripService {
	return &TripService{
		provider: provider,
		cache:    cache,
		sorter:   sorter,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *TripService) SearchTrips(ctx context.Context, origin, destination string, sortBy trip.SortOption) ([]trip.Trip, error) {
	origin = trip.NormalizePlace(origin)
	destination = trip.NormalizePlace(destination)
	key := searchCacheKey(origin, destination, sortBy)

	if v, ok := cacheGetJSON[[]trip.Trip](ctx, s.cache, s.logger, key); ok {
		return *v, nil
	}

	// Coalesce concurrent identical misses so one upstream call serves all
	// waiters. Waiters share the loaded slice; entries are immutable values.
	res, err, _ := s.sf.Do(key, func() (any, error) {
		if v, ok := cacheGetJSON[[]trip.Trip](ctx, s.cache, s.logger, key); ok {
			return *v, nil
		}
		candidates, err := s.provider.SearchTrips(ctx, origin, destination)
		if err != nil {
			return nil, err
		}
		sorted := s.sorter.Sort(candidates, sortBy)
		cacheSetJSON(ctx, s.cache, s.logger, key, sorted, s.ttl)
		return sorted, nil
	})
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"origin": origin, "destination": destination}).WithError(err).Error("trip search failed")
		}
		return nil, err
	}
	sorted, ok := res.([]trip.Trip)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return sorted, nil
}

// searchCacheKey is a pure function of the normalized query. Case-insensitive
// duplicate queries collide on one entry.
func searchCacheKey(origin, destination string, sortBy trip.SortOption) string {
	return fmt.Sprintf("search:%s:%s:%s", origin, destination, sortBy)
}
