package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/auth"
	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// currentUser returns the caller resolved by the auth middleware, or nil
func currentUser(c echo.Context) *models.User {
	return auth.UserFromContext(c.Request().Context())
}

// httpError maps service and repository errors onto HTTP errors
func httpError(err error) error {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotAuthorised):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// SourceView is the JSON shape of a notification source. Type tells Post
// and Comment apart.
type SourceView struct {
	Type      models.SourceKind   `json:"type"`
	ID        string              `json:"id"`
	Title     string              `json:"title,omitempty"`
	Content   string              `json:"content"`
	PostID    string              `json:"post_id,omitempty"`
	Author    *models.UserCompact `json:"author,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// NotificationView is the JSON shape of one NOTIFIED edge
type NotificationView struct {
	From      SourceView         `json:"from"`
	To        models.UserCompact `json:"to"`
	Read      bool               `json:"read"`
	Reason    models.Reason      `json:"reason"`
	CreatedAt time.Time          `json:"created_at"`
}

func sourceView(src models.Source) SourceView {
	v := SourceView{
		Type:    src.Kind(),
		ID:      src.NodeID(),
		Content: src.ContentBody(),
	}
	if author := src.AuthorUser(); author != nil {
		compact := author.ToCompact()
		v.Author = &compact
	}
	switch s := src.(type) {
	case *models.Post:
		v.Title = s.Title
		v.CreatedAt = s.CreatedAt
	case *models.Comment:
		v.PostID = s.PostID
		v.CreatedAt = s.CreatedAt
	}
	return v
}

func notificationView(n *models.Notification) NotificationView {
	v := NotificationView{
		From:      sourceView(n.From),
		Read:      n.Read(),
		Reason:    n.Edge.Reason,
		CreatedAt: n.CreatedAt(),
	}
	if n.ToUser != nil {
		v.To = n.ToUser.ToCompact()
	}
	return v
}
