package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications lists the caller's notifications.
// Query: read=true|false, order_by=created_at_asc|created_at_desc, first, offset.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	list, err := h.notifications.List(c.Request().Context(), currentUser(c), filter)
	if err != nil {
		return httpError(err)
	}

	views := make([]NotificationView, len(list))
	for i := range list {
		views[i] = notificationView(&list[i])
	}
	return ok(c, http.StatusOK, echo.Map{"notifications": views})
}

func parseFilter(c echo.Context) (repositories.NotificationFilter, error) {
	var filter repositories.NotificationFilter
	if raw := c.QueryParam("read"); raw != "" {
		read, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid read filter")
		}
		filter.Read = &read
	}

	order, err := models.ParseOrdering(c.QueryParam("order_by"))
	if err != nil {
		return filter, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	filter.OrderBy = order

	for name, dst := range map[string]*int{"first": &filter.First, "offset": &filter.Offset} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
		}
		*dst = n
	}
	return filter, nil
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.CountUnread(c.Request().Context(), currentUser(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks the caller's notifications from the node :id as read.
// data is null when there was nothing to mark.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	n, err := h.notifications.MarkAsRead(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if n == nil {
		return ok(c, http.StatusOK, nil)
	}
	return ok(c, http.StatusOK, notificationView(n))
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	marked, err := h.notifications.MarkAllAsRead(c.Request().Context(), currentUser(c))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"marked": marked})
}
