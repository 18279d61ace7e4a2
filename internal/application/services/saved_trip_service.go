package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avatarctic/trip-search/internal/core/apperrors"
	"github.com/avatarctic/trip-search/internal/core/domain/savedtrip"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SavedTripService serves saved-trip reads cache-aside and invalidates on
// write. Mutations delete the user's list entry instead of rewriting it:
// the next read rebuilds it from the repository, so the cache can never hold
// a list reconstructed ad hoc. The repository write always completes before
// the cache key is touched.
type SavedTripService struct {
	repo     ports.SavedTripRepository
	provider ports.TripsProvider
	cache    ports.Cache
	ttl      time.Duration
	logger   *logrus.Logger
}

func NewSavedTripService(repo ports.SavedTripRepository, provider ports.TripsProvider, cache ports.Cache, ttl time.Duration, logger *logrus.Logger) ports.SavedTripService {
	return &SavedTripService{
		repo:     repo,
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *SavedTripService) SaveTrip(ctx context.Context, userID uuid.UUID, tripID string) (*savedtrip.SavedTrip, error) {
	candidate, ok, err := s.provider.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFoundf("trip %s", tripID)
	}

	record, err := s.repo.Upsert(ctx, userID, candidate, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	// Invalidate only after the repository write committed.
	cacheDelete(ctx, s.cache, s.logger, savedTripsCacheKey(userID))

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "trip_id": tripID}).Info("trip saved")
	}
	return record, nil
}

func (s *SavedTripService) ListSavedTrips(ctx context.Context, userID uuid.UUID) ([]*savedtrip.SavedTrip, error) {
	key := savedTripsCacheKey(userID)

	if v, ok := cacheGetJSON[[]*savedtrip.SavedTrip](ctx, s.cache, s.logger, key); ok {
		return *v, nil
	}

	trips, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved trips: %w", err)
	}

	cacheSetJSON(ctx, s.cache, s.logger, key, trips, s.ttl)
	return trips, nil
}

func (s *SavedTripService) DeleteSavedTrip(ctx context.Context, userID uuid.UUID, externalTripID string) error {
	_, ok, err := s.repo.FindByExternalTripID(ctx, userID, externalTripID)
	if err != nil {
		return fmt.Errorf("failed to look up saved trip: %w", err)
	}
	if !ok {
		return apperrors.NotFoundf("saved trip %s", externalTripID)
	}

	if err := s.repo.DeleteByExternalTripID(ctx, userID, externalTripID); err != nil {
		return fmt.Errorf("failed to delete saved trip: %w", err)
	}

	cacheDelete(ctx, s.cache, s.logger, savedTripsCacheKey(userID))

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "external_trip_id": externalTripID}).Info("saved trip deleted")
	}
	return nil
}

// savedTripsCacheKey is a pure function of the user identity; no other
// process can guess a foreign user's key shape by accident.
func savedTripsCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:savedtrips", userID)
}
