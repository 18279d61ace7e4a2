package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/trip-search/internal/core/domain/user"
)

type ctxKey string

const (
	keyCurrentUser ctxKey = "current_user"
)

func SetCurrentUser(c echo.Context, u *user.User) { c.Set(string(keyCurrentUser), u) }

func GetCurrentUserRaw(c echo.Context) (*user.User, bool) {
	v := c.Get(string(keyCurrentUser))
	u, ok := v.(*user.User)
	return u, ok
}

// GetCurrentUserFromContext returns the authenticated user set by the auth
// middleware, or a 500 when the route is wired without it.
func GetCurrentUserFromContext(c echo.Context) (*user.User, error) {
	u, ok := GetCurrentUserRaw(c)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "user context missing; ensure auth middleware is applied")
	}
	return u, nil
}

// GetBearerToken extracts the bearer token from the Authorization header.
func GetBearerToken(c echo.Context) (string, bool) {
	authorization := c.Request().Header.Get("Authorization")
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || token == "" || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	return token, true
}
