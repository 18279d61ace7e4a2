package middleware

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/trip-search/internal/core/domain/user"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/avatarctic/trip-search/internal/infrastructure/httpserver/helpers"
)

type AuthMiddleware struct {
	userService ports.UserService
	jwtSecret   string
	logger      *logrus.Logger
}

func NewAuthMiddleware(userService ports.UserService, jwtSecret string, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{userService: userService, jwtSecret: jwtSecret, logger: logger}
}

// tokenClaims are the identity claims carried by access tokens.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token, ensures the local user row exists
// for the token subject, and stores the user in the request context.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := helpers.GetBearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &tokenClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(m.jwtSecret), nil
			})
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).WithError(err).Warn("jwt validation failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			input := user.EnsureUserInput{Subject: claims.Subject}
			if claims.Email != "" {
				input.Email = &claims.Email
			}
			if claims.Name != "" {
				input.Name = &claims.Name
			}

			u, err := m.userService.EnsureUser(c.Request().Context(), input)
			if err != nil {
				if m.logger != nil {
					m.logger.WithField("subject", claims.Subject).WithError(err).Error("failed to ensure user")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve user")
			}

			helpers.SetCurrentUser(c, u)
			return next(c)
		}
	}
}
