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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	SoftDeleteComment(ctx context.Context, id string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	comment.CreatedAt, comment.UpdatedAt = now, now
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// GetCommentByID retrieves a comment with its author and parent post
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Preload("Author").Preload("Post").Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// SoftDeleteComment flags a comment as deleted
func (r *PostgresCommentRepository) SoftDeleteComment(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).
		Updates(map[string]any{"deleted": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("comment", id)
	}
	return nil
}
