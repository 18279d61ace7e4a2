package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/trip-search/internal/core/apperrors"
)

type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// errorHandler maps the error taxonomy to wire statuses. NotFound and
// upstream failures propagate with their detail; everything unexpected is a
// 500 with a generic message.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	name := "InternalServerError"
	message := "internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Code
		name = http.StatusText(status)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		name = "NotFoundError"
		message = err.Error()
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		name = "ValidationError"
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		name = "UnauthorizedError"
		message = err.Error()
	case errors.Is(err, apperrors.ErrUpstream):
		status = http.StatusBadGateway
		name = "UpstreamError"
		message = err.Error()
	}

	if s.logger != nil {
		entry := s.logger.WithField("path", c.Request().URL.Path).WithError(err)
		if status >= 500 {
			entry.Error("request failed")
		} else {
			entry.Warn("request failed")
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorResponse{Error: name, Message: message, StatusCode: status})
}
