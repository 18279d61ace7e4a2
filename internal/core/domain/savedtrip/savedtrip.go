package savedtrip

import (
	"time"

	"github.com/google/uuid"
)

// SavedTrip is a persisted, point-in-time projection of a trip candidate
// scoped to one user. At most one row exists per (UserID, ExternalTripID);
// saving the same trip again overwrites the snapshot and bumps SavedAt.
// FetchedAt records how fresh the upstream data was at write time.
type SavedTrip struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	ExternalTripID string    `json:"external_trip_id" db:"external_trip_id"`
	Origin         string    `json:"origin" db:"origin"`
	Destination    string    `json:"destination" db:"destination"`
	Cost           int       `json:"cost" db:"cost"`
	Duration       int       `json:"duration" db:"duration"`
	Type           string    `json:"type" db:"type"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	SavedAt        time.Time `json:"saved_at" db:"saved_at"`
	FetchedAt      time.Time `json:"fetched_at" db:"fetched_at"`
}

// SaveTripRequest is the payload accepted by the save endpoint.
type SaveTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
}
