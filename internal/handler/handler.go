package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
	"taskboard/internal/model"
)

// SessionCookieName is the cookie carrying the session token. The cookie is
// the only token transport; there is no bearer-header path.
const SessionCookieName = "session_token"

// ContextUserKey is the echo context key under which the authenticated user is stored.
const ContextUserKey = "current_user"

// CurrentUser returns the authenticated user placed in the context by the
// session middleware.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "unauthorized",
			Code:  "UNAUTHORIZED",
		})
	}
	return user, nil
}

// toHTTPError translates a domain error into an echo HTTP error.
func toHTTPError(err error) *echo.HTTPError {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
