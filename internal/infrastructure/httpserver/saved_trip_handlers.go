package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/trip-search/internal/core/domain/savedtrip"
	"github.com/avatarctic/trip-search/internal/infrastructure/httpserver/helpers"
)

type savedTripResponse struct {
	SavedTrip *savedtrip.SavedTrip `json:"savedTrip"`
}

type savedTripsResponse struct {
	SavedTrips []*savedtrip.SavedTrip `json:"savedTrips"`
}

// saveTrip handles POST /v1/me/saved-trips.
func (s *Server) saveTrip(c echo.Context) error {
	current, err := helpers.GetCurrentUserFromContext(c)
	if err != nil {
		return err
	}

	var req savedtrip.SaveTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TripID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tripId is required")
	}

	record, err := s.savedTripSvc.SaveTrip(c.Request().Context(), current.ID, req.TripID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, savedTripResponse{SavedTrip: record})
}

// listSavedTrips handles GET /v1/me/saved-trips.
func (s *Server) listSavedTrips(c echo.Context) error {
	current, err := helpers.GetCurrentUserFromContext(c)
	if err != nil {
		return err
	}

	trips, err := s.savedTripSvc.ListSavedTrips(c.Request().Context(), current.ID)
	if err != nil {
		return err
	}
	if trips == nil {
		trips = []*savedtrip.SavedTrip{}
	}

	return c.JSON(http.StatusOK, savedTripsResponse{SavedTrips: trips})
}

// deleteSavedTrip handles DELETE /v1/me/saved-trips/:tripId.
func (s *Server) deleteSavedTrip(c echo.Context) error {
	current, err := helpers.GetCurrentUserFromContext(c)
	if err != nil {
		return err
	}

	tripID := c.Param("tripId")
	if tripID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tripId is required")
	}

	if err := s.savedTripSvc.DeleteSavedTrip(c.Request().Context(), current.ID, tripID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
