package services

import (
	"context"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/pkg/metrics"
	"go.uber.org/zap"
)

// NotificationService is the per-viewer read and mark-as-read side of
// notifications. Every method requires a viewer.
type NotificationService struct {
	repo repositories.NotificationRepository
	log  *zap.Logger
}

func NewNotificationService(repo repositories.NotificationRepository, log *zap.Logger) *NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationService{repo: repo, log: log}
}

// List returns the viewer's notifications, newest first unless filter says otherwise
func (s *NotificationService) List(ctx context.Context, viewer *models.User, filter repositories.NotificationFilter) ([]models.Notification, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	if filter.First < 0 || filter.Offset < 0 {
		return nil, invalid("first and offset must not be negative")
	}
	if filter.OrderBy == "" {
		filter.OrderBy = models.OrderCreatedAtDesc
	}
	defer metrics.ObserveQuery("list", time.Now())
	return s.repo.List(ctx, viewer.ID, filter)
}

// MarkAsRead flips the viewer's unread notifications from sourceID. A nil
// result without error means there was nothing to mark.
func (s *NotificationService) MarkAsRead(ctx context.Context, viewer *models.User, sourceID string) (*models.Notification, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	defer metrics.ObserveQuery("mark_as_read", time.Now())
	n, err := s.repo.MarkAsRead(ctx, viewer.ID, sourceID)
	if err != nil {
		return nil, err
	}
	if n != nil {
		metrics.NotificationsMarkedRead.Inc()
	}
	return n, nil
}

// MarkAllAsRead flips every visible unread notification of the viewer
func (s *NotificationService) MarkAllAsRead(ctx context.Context, viewer *models.User) (int64, error) {
	if viewer == nil {
		return 0, ErrNotAuthorised
	}
	defer metrics.ObserveQuery("mark_all_as_read", time.Now())
	marked, err := s.repo.MarkAllAsRead(ctx, viewer.ID)
	if err != nil {
		return 0, err
	}
	metrics.NotificationsMarkedRead.Add(float64(marked))
	s.log.Debug("notifications marked as read", zap.String("user_id", viewer.ID), zap.Int64("count", marked))
	return marked, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, viewer *models.User) (int64, error) {
	if viewer == nil {
		return 0, ErrNotAuthorised
	}
	defer metrics.ObserveQuery("count_unread", time.Now())
	return s.repo.CountUnread(ctx, viewer.ID)
}
