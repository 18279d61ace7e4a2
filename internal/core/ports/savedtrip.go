package ports

import (
	"context"
	"time"

	"github.com/avatarctic/trip-search/internal/core/domain/savedtrip"
	"github.com/avatarctic/trip-search/internal/core/domain/trip"
	"github.com/google/uuid"
)

// SavedTripRepository defines the interface for saved-trip persistence.
// The repository is strongly consistent and cache-unaware; cache-key
// lifecycle belongs to the service layer.
type SavedTripRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*savedtrip.SavedTrip, error)
	// Upsert inserts or overwrites the snapshot for (userID, t.ID),
	// bumping saved_at on every write.
	Upsert(ctx context.Context, userID uuid.UUID, t *trip.Trip, fetchedAt time.Time) (*savedtrip.SavedTrip, error)
	DeleteByExternalTripID(ctx context.Context, userID uuid.UUID, externalTripID string) error
	// FindByExternalTripID returns ok=false when no snapshot exists.
	FindByExternalTripID(ctx context.Context, userID uuid.UUID, externalTripID string) (*savedtrip.SavedTrip, bool, error)
}

// SavedTripService defines the saved-trip use cases.
type SavedTripService interface {
	SaveTrip(ctx context.Context, userID uuid.UUID, tripID string) (*savedtrip.SavedTrip, error)
	ListSavedTrips(ctx context.Context, userID uuid.UUID) ([]*savedtrip.SavedTrip, error)
	DeleteSavedTrip(ctx context.Context, userID uuid.UUID, externalTripID string) error
}
