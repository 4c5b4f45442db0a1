package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationFilter narrows and orders a notification listing
type NotificationFilter struct {
	Read    *bool
	OrderBy models.Ordering
	First   int // 0 means no limit
	Offset  int
}

// NotificationRepository stores NOTIFIED relationships and serves the
// per-recipient read model. Every read path hides edges whose source node is
// gone or soft-deleted.
type NotificationRepository interface {
	// Upsert creates the (source, target, reason) edge if it does not exist
	// yet. An existing edge is left untouched. created reports whether a new
	// edge was written.
	Upsert(ctx context.Context, source models.Source, targetID string, reason models.Reason) (created bool, err error)
	List(ctx context.Context, targetID string, filter NotificationFilter) ([]models.Notification, error)
	// MarkAsRead flips the target's unread edges from sourceID and returns the
	// earliest of them, or nil when there was nothing to mark.
	MarkAsRead(ctx context.Context, targetID, sourceID string) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, targetID string) (int64, error)
	CountUnread(ctx context.Context, targetID string) (int64, error)
}

type postgresNotificationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NotificationRepositoryOption customises a postgres notification repository
type NotificationRepositoryOption func(*postgresNotificationRepository)

// WithClock replaces the clock used to stamp new edges
func WithClock(now func() time.Time) NotificationRepositoryOption {
	return func(r *postgresNotificationRepository) { r.now = now }
}

func NewPostgresNotificationRepository(db *gorm.DB, opts ...NotificationRepositoryOption) NotificationRepository {
	r := &postgresNotificationRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// activeSource restricts a query over notified to edges whose source node
// still exists and is not soft-deleted. A comment also needs a live parent
// post. This is the single definition of the cascade rule for this backend.
func activeSource(db *gorm.DB) *gorm.DB {
	return db.
		Joins("LEFT JOIN posts ON notified.source_type = ? AND posts.id = notified.source_id", models.SourceKindPost).
		Joins("LEFT JOIN comments ON notified.source_type = ? AND comments.id = notified.source_id", models.SourceKindComment).
		Joins("LEFT JOIN posts AS parent_posts ON parent_posts.id = comments.post_id").
		Where("((posts.id IS NOT NULL AND posts.deleted = ?) OR "+
			"(comments.id IS NOT NULL AND comments.deleted = ? AND parent_posts.id IS NOT NULL AND parent_posts.deleted = ?))",
			false, false, false)
}

func (r *postgresNotificationRepository) Upsert(ctx context.Context, source models.Source, targetID string, reason models.Reason) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := liveSourceExists(tx, source.Kind(), source.NodeID()); err != nil {
			return err
		}
		var users int64
		if err := tx.Model(&models.User{}).Where("id = ?", targetID).Count(&users).Error; err != nil {
			return err
		}
		if users == 0 {
			return notFound("user", targetID)
		}

		edge := models.Notified{
			SourceID:   source.NodeID(),
			SourceType: source.Kind(),
			TargetID:   targetID,
			Reason:     reason,
			Read:       false,
			CreatedAt:  r.now(),
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}, {Name: "target_id"}, {Name: "reason"}},
			DoNothing: true,
		}).Create(&edge)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		return nil
	})
	return created, err
}

// liveSourceExists applies the same liveness rule as activeSource to a single
// node, so an edge is never written that every read path would hide.
func liveSourceExists(tx *gorm.DB, kind models.SourceKind, id string) error {
	var q *gorm.DB
	switch kind {
	case models.SourceKindPost:
		q = tx.Model(&models.Post{}).Where("posts.id = ? AND posts.deleted = ?", id, false)
	case models.SourceKindComment:
		q = tx.Model(&models.Comment{}).
			Joins("JOIN posts ON posts.id = comments.post_id").
			Where("comments.id = ? AND comments.deleted = ? AND posts.deleted = ?", id, false, false)
	default:
		return fmt.Errorf("unknown source kind %q", kind)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return notFound(strings.ToLower(string(kind)), id)
	}
	return nil
}

func (r *postgresNotificationRepository) List(ctx context.Context, targetID string, filter NotificationFilter) ([]models.Notification, error) {
	dir := "DESC"
	if filter.OrderBy == models.OrderCreatedAtAsc {
		dir = "ASC"
	}

	q := r.db.WithContext(ctx).Model(&models.Notified{}).
		Select("notified.*").
		Scopes(activeSource).
		Where("notified.target_id = ?", targetID)
	if filter.Read != nil {
		q = q.Where("notified.read = ?", *filter.Read)
	}
	q = q.Order("notified.created_at " + dir).Order("notified.id " + dir)
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.First > 0 {
		q = q.Limit(filter.First)
	}

	var edges []models.Notified
	if err := q.Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return r.resolve(ctx, targetID, edges)
}

func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, targetID, sourceID string) (*models.Notification, error) {
	var marked []models.Notified
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []models.Notified
		err := tx.Model(&models.Notified{}).
			Select("notified.*").
			Scopes(activeSource).
			Where("notified.target_id = ? AND notified.source_id = ? AND notified.read = ?", targetID, sourceID, false).
			Order("notified.created_at ASC").Order("notified.id ASC").
			Find(&candidates).Error
		if err != nil {
			return err
		}
		for _, edge := range candidates {
			// conditional write: a concurrent reader may have flipped it first
			res := tx.Model(&models.Notified{}).Where("id = ? AND read = ?", edge.ID, false).Update("read", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				edge.Read = true
				marked = append(marked, edge)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark notification as read: %w", err)
	}
	if len(marked) == 0 {
		return nil, nil
	}

	views, err := r.resolve(ctx, targetID, marked[:1])
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, targetID string) (int64, error) {
	unread := activeSource(r.db.Model(&models.Notified{}).Select("notified.id")).
		Where("notified.target_id = ? AND notified.read = ?", targetID, false)
	res := r.db.WithContext(ctx).Model(&models.Notified{}).
		Where("id IN (?)", unread).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *postgresNotificationRepository) CountUnread(ctx context.Context, targetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notified{}).
		Scopes(activeSource).
		Where("notified.target_id = ? AND notified.read = ?", targetID, false).
		Count(&count).Error
	return count, err
}

// resolve loads the source nodes of edges and pairs them up. Edges whose
// source vanished between the two queries are dropped.
func (r *postgresNotificationRepository) resolve(ctx context.Context, targetID string, edges []models.Notified) ([]models.Notification, error) {
	if len(edges) == 0 {
		return []models.Notification{}, nil
	}

	var postIDs, commentIDs []string
	for _, e := range edges {
		switch e.SourceType {
		case models.SourceKindPost:
			postIDs = append(postIDs, e.SourceID)
		case models.SourceKindComment:
			commentIDs = append(commentIDs, e.SourceID)
		}
	}

	db := r.db.WithContext(ctx)
	sources := make(map[string]models.Source, len(edges))
	if len(postIDs) > 0 {
		var posts []*models.Post
		if err := db.Preload("Author").Where("id IN ?", postIDs).Find(&posts).Error; err != nil {
			return nil, fmt.Errorf("load notification posts: %w", err)
		}
		for _, p := range posts {
			sources[sourceKey(models.SourceKindPost, p.ID)] = p
		}
	}
	if len(commentIDs) > 0 {
		var comments []*models.Comment
		if err := db.Preload("Author").Preload("Post").Where("id IN ?", commentIDs).Find(&comments).Error; err != nil {
			return nil, fmt.Errorf("load notification comments: %w", err)
		}
		for _, c := range comments {
			sources[sourceKey(models.SourceKindComment, c.ID)] = c
		}
	}

	var target models.User
	if err := db.Where("id = ?", targetID).First(&target).Error; err != nil {
		return nil, fmt.Errorf("load notification recipient: %w", err)
	}

	out := make([]models.Notification, 0, len(edges))
	for _, e := range edges {
		src, ok := sources[sourceKey(e.SourceType, e.SourceID)]
		if !ok {
			continue
		}
		out = append(out, models.Notification{Edge: e, From: src, ToUser: &target})
	}
	return out, nil
}

func sourceKey(kind models.SourceKind, id string) string {
	return string(kind) + ":" + id
}
