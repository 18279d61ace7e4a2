package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avatarctic/trip-search/internal/core/domain/savedtrip"
	"github.com/avatarctic/trip-search/internal/core/domain/trip"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/avatarctic/trip-search/internal/infrastructure/db"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxSavedTripsPerUser bounds the list query. Unbounded per-user growth is an
// operational risk; 1000 snapshots is far beyond any realistic user.
const maxSavedTripsPerUser = 1000

// SavedTripRepository implements the saved-trip repository interface on
// Postgres. It is cache-unaware by contract.
type SavedTripRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewSavedTripRepository creates a new saved-trip repository
func NewSavedTripRepository(database *db.Database, logger *logrus.Logger) ports.SavedTripRepository {
	return &SavedTripRepository{
		db:     database,
		logger: logger,
	}
}

// ListByUser returns the user's snapshots, most recently saved first.
func (r *SavedTripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*savedtrip.SavedTrip, error) {
	trips := []*savedtrip.SavedTrip{}
	query := `
		SELECT id, user_id, external_trip_id, origin, destination, cost, duration, type, display_name, saved_at, fetched_at
		FROM user_saved_trips
		WHERE user_id = $1
		ORDER BY saved_at DESC
		LIMIT $2`

	err := r.db.DB.SelectContext(ctx, &trips, query, userID, maxSavedTripsPerUser)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to list saved trips")
		}
		return nil, fmt.Errorf("failed to list saved trips: %w", err)
	}

	return trips, nil
}

// Upsert inserts or overwrites the snapshot for (userID, t.ID). saved_at is
// bumped on every write; fetched_at records upstream freshness at write time.
func (r *SavedTripRepository) Upsert(ctx context.Context, userID uuid.UUID, t *trip.Trip, fetchedAt time.Time) (*savedtrip.SavedTrip, error) {
	var record savedtrip.SavedTrip
	query := `
		INSERT INTO user_saved_trips (id, user_id, external_trip_id, origin, destination, cost, duration, type, display_name, saved_at, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10)
		ON CONFLICT (user_id, external_trip_id) DO UPDATE SET
			origin = EXCLUDED.origin,
			destination = EXCLUDED.destination,
			cost = EXCLUDED.cost,
			duration = EXCLUDED.duration,
			type = EXCLUDED.type,
			display_name = EXCLUDED.display_name,
			saved_at = NOW(),
			fetched_at = EXCLUDED.fetched_at
		RETURNING id, user_id, external_trip_id, origin, destination, cost, duration, type, display_name, saved_at, fetched_at`

	err := r.db.DB.GetContext(ctx, &record, query,
		uuid.New(), userID, t.ID, t.Origin, t.Destination, t.Cost, t.Duration, t.Type, t.DisplayName, fetchedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID, "external_trip_id": t.ID}).WithError(err).Error("db: failed to upsert saved trip")
		}
		return nil, fmt.Errorf("failed to upsert saved trip: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": userID, "external_trip_id": t.ID}).Debug("db: saved trip upserted")
	}

	return &record, nil
}

// DeleteByExternalTripID removes the snapshot for (userID, externalTripID).
func (r *SavedTripRepository) DeleteByExternalTripID(ctx context.Context, userID uuid.UUID, externalTripID string) error {
	query := `DELETE FROM user_saved_trips WHERE user_id = $1 AND external_trip_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, userID, externalTripID)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID, "external_trip_id": externalTripID}).WithError(err).Error("db: failed to delete saved trip")
		}
		return fmt.Errorf("failed to delete saved trip: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID, "external_trip_id": externalTripID}).Debug("db: delete affected 0 rows - saved trip not found")
		}
		return fmt.Errorf("saved trip %s not found for user %s", externalTripID, userID)
	}

	return nil
}

// FindByExternalTripID returns ok=false when no snapshot exists.
func (r *SavedTripRepository) FindByExternalTripID(ctx context.Context, userID uuid.UUID, externalTripID string) (*savedtrip.SavedTrip, bool, error) {
	var record savedtrip.SavedTrip
	query := `
		SELECT id, user_id, external_trip_id, origin, destination, cost, duration, type, display_name, saved_at, fetched_at
		FROM user_saved_trips
		WHERE user_id = $1 AND external_trip_id = $2`

	err := r.db.DB.GetContext(ctx, &record, query, userID, externalTripID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID, "external_trip_id": externalTripID}).WithError(err).Error("db: failed to find saved trip")
		}
		return nil, false, fmt.Errorf("failed to find saved trip: %w", err)
	}

	return &record, true, nil
}

var _ ports.SavedTripRepository = (*SavedTripRepository)(nil)
