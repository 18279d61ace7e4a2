package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/trip-search/internal/core/domain/user"
	"github.com/avatarctic/trip-search/internal/infrastructure/httpserver/helpers"
)

type userResponse struct {
	User *user.User `json:"user"`
}

// registerUser handles POST /v1/users.
func (s *Server) registerUser(c echo.Context) error {
	var req user.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !strings.Contains(req.Email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	created, err := s.userService.RegisterUser(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: created})
}

// getOwnProfile handles GET /v1/me/profile.
func (s *Server) getOwnProfile(c echo.Context) error {
	current, err := helpers.GetCurrentUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: current})
}
