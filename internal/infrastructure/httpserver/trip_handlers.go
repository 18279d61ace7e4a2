package httpserver

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/trip-search/internal/core/domain/trip"
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// supportedAirports is the allow-list of IATA codes the upstream provider
// serves.
var supportedAirports = map[string]struct{}{
	"ATL": {}, "PEK": {}, "LAX": {}, "DXB": {}, "HND": {}, "ORD": {}, "LHR": {},
	"PVG": {}, "CDG": {}, "DFW": {}, "AMS": {}, "FRA": {}, "IST": {}, "CAN": {},
	"JFK": {}, "SIN": {}, "DEN": {}, "ICN": {}, "BKK": {}, "SFO": {}, "LAS": {},
	"CLT": {}, "MIA": {}, "KUL": {}, "SEA": {}, "MUC": {}, "EWR": {}, "MAD": {},
	"HKG": {}, "MCO": {}, "PHX": {}, "IAH": {}, "SYD": {}, "MEL": {}, "GRU": {},
	"YYZ": {}, "LGW": {}, "BCN": {}, "MAN": {}, "BOM": {}, "DEL": {}, "ZRH": {},
	"SVO": {}, "DME": {}, "JNB": {}, "ARN": {}, "OSL": {}, "CPH": {}, "HEL": {},
	"VIE": {},
}

type searchResponse struct {
	Trips []trip.Trip `json:"trips"`
}

// searchTrips handles GET /v1/trips/search. Validation is the boundary's
// job: the use case only ever sees well-formed, supported codes.
func (s *Server) searchTrips(c echo.Context) error {
	origin, err := parseAirportCode(c.QueryParam("origin"), "origin")
	if err != nil {
		return err
	}
	destination, err := parseAirportCode(c.QueryParam("destination"), "destination")
	if err != nil {
		return err
	}
	if origin == destination {
		return echo.NewHTTPError(http.StatusBadRequest, "destination must be different from origin")
	}

	sortBy := trip.SortOption(c.QueryParam("sort_by"))
	if sortBy == "" {
		sortBy = trip.SortCheapest
	}
	if !sortBy.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "sort_by must be one of: fastest, cheapest")
	}

	trips, err := s.tripService.SearchTrips(c.Request().Context(), origin, destination, sortBy)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchResponse{Trips: trips})
}

func parseAirportCode(raw, field string) (string, error) {
	code := trip.NormalizePlace(raw)
	if !iataPattern.MatchString(code) {
		return "", echo.NewHTTPError(http.StatusBadRequest, field+" must be a 3-letter IATA code")
	}
	if _, ok := supportedAirports[code]; !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, field+" airport code is not supported")
	}
	return code, nil
}
