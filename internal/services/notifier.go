package services

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/pkg/metrics"
	"go.uber.org/zap"
)

// Notifier writes NOTIFIED edges as a side effect of content mutations
type Notifier struct {
	repo repositories.NotificationRepository
	log  *zap.Logger
}

// NewNotifier creates a Notifier
func NewNotifier(repo repositories.NotificationRepository, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{repo: repo, log: log}
}

// Notify records that targetID was notified about source for reason.
// Notifying the author of source is a no-op, as is repeating an existing
// (source, target, reason) notification.
func (n *Notifier) Notify(ctx context.Context, source models.Source, targetID string, reason models.Reason) error {
	if !reason.Valid() {
		return fmt.Errorf("unknown notification reason %q", reason)
	}
	if targetID == "" || targetID == source.AuthorUserID() {
		return nil
	}

	created, err := n.repo.Upsert(ctx, source, targetID, reason)
	if err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(reason)).Inc()
		return fmt.Errorf("notify %s about %s %s: %w", targetID, source.Kind(), source.NodeID(), err)
	}
	if created {
		metrics.NotificationsCreated.WithLabelValues(string(reason)).Inc()
		n.log.Debug("notification created",
			zap.String("source_id", source.NodeID()),
			zap.String("target_id", targetID),
			zap.String("reason", string(reason)),
		)
	}
	return nil
}

// NotifyAll notifies every target and never fails: errors are logged so the
// triggering mutation still succeeds.
func (n *Notifier) NotifyAll(ctx context.Context, source models.Source, targetIDs []string, reason models.Reason) {
	for _, targetID := range targetIDs {
		if err := n.Notify(ctx, source, targetID, reason); err != nil {
			n.log.Warn("failed to write notification",
				zap.String("source_id", source.NodeID()),
				zap.String("target_id", targetID),
				zap.String("reason", string(reason)),
				zap.Error(err),
			)
		}
	}
}
