package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware resolves the caller from a Firebase ID token and
// the user node linked to its UID. Requests without an Authorization header
// pass through anonymously.
func FirebaseAuthMiddleware(verifier TokenVerifier, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, ok, err := bearerToken(c)
			if err != nil {
				return err
			}
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			user, err := users.GetUserByFirebaseUID(ctx, token.UID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			c.Set("firebaseUID", token.UID)
			attachUser(c, user)
			return next(c)
		}
	}
}
