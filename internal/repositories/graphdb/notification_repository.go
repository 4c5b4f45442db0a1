package graphdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NotificationRepository implements repositories.NotificationRepository on Neo4j
type NotificationRepository struct {
	store *Store
}

// NewNotificationRepository creates a Neo4j backed NotificationRepository
func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) Upsert(ctx context.Context, source models.Source, targetID string, reason models.Reason) (bool, error) {
	label, err := sourceLabel(source.Kind())
	if err != nil {
		return false, err
	}
	params := map[string]any{
		"sourceId":  source.NodeID(),
		"userId":    targetID,
		"reason":    string(reason),
		"createdAt": formatTime(r.store.now()),
	}

	created, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := collect(ctx, tx, upsertChecksQuery(label), params)
		if err != nil {
			return false, err
		}
		if len(records) != 1 {
			return false, fmt.Errorf("upsert checks returned %d rows", len(records))
		}
		if has, _ := records[0].Get("hasSource"); has != true {
			return false, &repositories.NotFoundError{Kind: strings.ToLower(label), ID: source.NodeID()}
		}
		if has, _ := records[0].Get("hasUser"); has != true {
			return false, &repositories.NotFoundError{Kind: "user", ID: targetID}
		}

		res, err := tx.Run(ctx, upsertQuery(label), params)
		if err != nil {
			return false, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return false, err
		}
		return summary.Counters().RelationshipsCreated() > 0, nil
	})
	if err != nil {
		return false, err
	}
	return created.(bool), nil
}

func (r *NotificationRepository) List(ctx context.Context, targetID string, filter repositories.NotificationFilter) ([]models.Notification, error) {
	cypher, params := listQuery(targetID, filter)
	out, err := r.store.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := collect(ctx, tx, cypher, params)
		if err != nil {
			return nil, err
		}
		return decodeNotifications(records)
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out.([]models.Notification), nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, targetID, sourceID string) (*models.Notification, error) {
	params := map[string]any{"sourceId": sourceID, "userId": targetID}
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := collect(ctx, tx, lockEdgesQuery, params); err != nil {
			return nil, err
		}
		records, err := collect(ctx, tx, markAsReadQuery, params)
		if err != nil {
			return nil, err
		}
		return decodeNotifications(records)
	})
	if err != nil {
		return nil, fmt.Errorf("mark notification as read: %w", err)
	}
	marked := out.([]models.Notification)
	if len(marked) == 0 {
		return nil, nil
	}
	return &marked[0], nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, targetID string) (int64, error) {
	out, err := r.store.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return singleCount(ctx, tx, markAllAsReadQuery, map[string]any{"userId": targetID}, "marked")
	})
	if err != nil {
		return 0, err
	}
	return out.(int64), nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, targetID string) (int64, error) {
	out, err := r.store.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return singleCount(ctx, tx, countUnreadQuery, map[string]any{"userId": targetID}, "unread")
	})
	if err != nil {
		return 0, err
	}
	return out.(int64), nil
}

func singleCount(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any, key string) (int64, error) {
	records, err := collect(ctx, tx, cypher, params)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	v, _ := records[0].Get(key)
	n, _ := v.(int64)
	return n, nil
}

func decodeNotifications(records []*neo4j.Record) ([]models.Notification, error) {
	out := make([]models.Notification, 0, len(records))
	for _, rec := range records {
		n, err := notificationFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, nil
}
