package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	// SoftDeletePost flags the post and all of its comments as deleted.
	SoftDeletePost(ctx context.Context, id string) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost persists a new post node
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	post.CreatedAt, post.UpdatedAt = now, now
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// GetPostByID retrieves a post with its author. Soft-deleted posts are
// returned as well; callers check Deleted.
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("post", id)
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost writes title and content of an existing post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]any{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("post", post.ID)
	}
	return nil
}

// SoftDeletePost marks a post and its comments deleted in one transaction.
// NOTIFIED edges are left in place; readers filter them out.
func (r *PostgresPostRepository) SoftDeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.Post{}).Where("id = ?", id).
			Updates(map[string]any{"deleted": true, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("post", id)
		}
		return tx.Model(&models.Comment{}).Where("post_id = ?", id).
			Updates(map[string]any{"deleted": true, "updated_at": now}).Error
	})
}
