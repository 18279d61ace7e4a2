package ports

import (
	"context"

	"github.com/avatarctic/trip-search/internal/core/domain/trip"
)

// TripsProvider is the wire boundary to the upstream trip-data source.
// Implementations own retry/timeout behavior; they know nothing about
// caching.
type TripsProvider interface {
	// SearchTrips returns the raw candidates for an origin/destination
	// pair, in provider order.
	SearchTrips(ctx context.Context, origin, destination string) ([]trip.Trip, error)
	// GetTripByID resolves a single candidate. ok=false when the provider
	// reports the trip does not exist; an error means the provider itself
	// is broken.
	GetTripByID(ctx context.Context, tripID string) (*trip.Trip, bool, error)
}

// TripService defines the search use case.
type TripService interface {
	SearchTrips(ctx context.Context, origin, destination string, sortBy trip.SortOption) ([]trip.Trip, error)
}
