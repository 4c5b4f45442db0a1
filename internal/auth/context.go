// Package auth carries the authenticated user through a request context.
package auth

import (
	"context"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
)

type contextKey struct{}

// WithUser returns a copy of ctx carrying user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the authenticated user or nil
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKey{}).(*models.User)
	return user
}
