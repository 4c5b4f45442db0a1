package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/nano-midea/graph-backend/internal/mentions"
	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	msgCommentTooShort = "Comment must be at least 1 character long!"
	msgCommentNoPost   = "Comment cannot be created without a post!"
)

// ContentService runs post and comment mutations and the notifications they trigger
type ContentService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	notifier *Notifier
	validate *validator.Validate
	strip    *bluemonday.Policy
	log      *zap.Logger
}

func NewContentService(posts repositories.PostRepository, comments repositories.CommentRepository, notifier *Notifier, log *zap.Logger) *ContentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContentService{
		posts:    posts,
		comments: comments,
		notifier: notifier,
		validate: validator.New(),
		strip:    bluemonday.StrictPolicy(),
		log:      log,
	}
}

// GetPost returns a live post
func (s *ContentService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Deleted {
		return nil, &repositories.NotFoundError{Kind: "post", ID: id}
	}
	return post, nil
}

// CreatePost stores a post by viewer and notifies the users it mentions
func (s *ContentService) CreatePost(ctx context.Context, viewer *models.User, req models.CreatePostRequest) (*models.Post, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}

	post := &models.Post{
		AuthorID: viewer.ID,
		Author:   viewer,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.notifier.NotifyAll(ctx, post, mentions.ExtractUserIDs(post.Content), models.ReasonMentionedInPost)
	return post, nil
}

// UpdatePost changes the post's title or content. Mentions are notified
// again; users already notified keep their existing notification.
func (s *ContentService) UpdatePost(ctx context.Context, viewer *models.User, id string, req models.UpdatePostRequest) (*models.Post, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	post, err := s.ownedPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.notifier.NotifyAll(ctx, post, mentions.ExtractUserIDs(post.Content), models.ReasonMentionedInPost)
	return post, nil
}

// DeletePost soft-deletes the post together with its comments. Their
// notifications disappear from every listing.
func (s *ContentService) DeletePost(ctx context.Context, viewer *models.User, id string) (*models.Post, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	post, err := s.ownedPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.SoftDeletePost(ctx, id); err != nil {
		return nil, err
	}
	post.Deleted = true
	return post, nil
}

// CreateComment stores a comment by viewer on postID. The post author is
// notified, as is every user mentioned in the comment.
func (s *ContentService) CreateComment(ctx context.Context, viewer *models.User, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	if strings.TrimSpace(s.strip.Sanitize(req.Content)) == "" {
		return nil, invalid(msgCommentTooShort)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if postID == "" {
		return nil, invalid(msgCommentNoPost)
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && post.Deleted) {
		return nil, invalid(msgCommentNoPost)
	}
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		Post:     post,
		AuthorID: viewer.ID,
		Author:   viewer,
		Content:  req.Content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.NotifyAll(ctx, comment, []string{post.AuthorID}, models.ReasonCommentedOnPost)
	s.notifier.NotifyAll(ctx, comment, mentions.ExtractUserIDs(comment.Content), models.ReasonMentionedInComment)
	return comment, nil
}

// DeleteComment soft-deletes a comment written by viewer
func (s *ContentService) DeleteComment(ctx context.Context, viewer *models.User, id string) (*models.Comment, error) {
	if viewer == nil {
		return nil, ErrNotAuthorised
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.Deleted {
		return nil, &repositories.NotFoundError{Kind: "comment", ID: id}
	}
	if comment.AuthorID != viewer.ID {
		return nil, ErrForbidden
	}
	if err := s.comments.SoftDeleteComment(ctx, id); err != nil {
		return nil, err
	}
	comment.Deleted = true
	return comment, nil
}

func (s *ContentService) ownedPost(ctx context.Context, viewer *models.User, id string) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewer.ID {
		s.log.Info("rejected change to foreign post", zap.String("post_id", id), zap.String("user_id", viewer.ID))
		return nil, ErrForbidden
	}
	return post, nil
}
