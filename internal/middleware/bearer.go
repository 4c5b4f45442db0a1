package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/nano-midea/graph-backend/internal/auth"
	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/labstack/echo/v4"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is absent, which leaves the request anonymous.
func bearerToken(c echo.Context) (token string, ok bool, err error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], true, nil
}

// attachUser makes user visible both to echo handlers and to anything
// reading the request context.
func attachUser(c echo.Context, user *models.User) {
	c.Set("user", user)
	req := c.Request()
	c.SetRequest(req.WithContext(auth.WithUser(req.Context(), user)))
}
