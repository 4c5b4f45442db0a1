package gql

import (
	"context"

	"github.com/anonto42/nano-midea/graph-backend/internal/auth"
	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root resolver for both Query and Mutation
type Resolver struct {
	content       *services.ContentService
	notifications *services.NotificationService
}

func (r *Resolver) CurrentUser(ctx context.Context) *userResolver {
	return newUser(auth.UserFromContext(ctx))
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	p, err := r.content.GetPost(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return newPost(p), nil
}

// OrderBy is nil when omitted; ParseOrdering then picks newest first
type notificationsArgs struct {
	Read    *bool
	OrderBy *string
	First   *int32
	Offset  *int32
}

func (r *Resolver) Notifications(ctx context.Context, args notificationsArgs) ([]*notificationResolver, error) {
	var orderBy string
	if args.OrderBy != nil {
		orderBy = *args.OrderBy
	}
	order, err := models.ParseOrdering(orderBy)
	if err != nil {
		return nil, err
	}
	filter := repositories.NotificationFilter{Read: args.Read, OrderBy: order}
	if args.First != nil {
		filter.First = int(*args.First)
	}
	if args.Offset != nil {
		filter.Offset = int(*args.Offset)
	}

	list, err := r.notifications.List(ctx, auth.UserFromContext(ctx), filter)
	if err != nil {
		return nil, err
	}
	out := make([]*notificationResolver, len(list))
	for i := range list {
		out[i] = &notificationResolver{n: &list[i]}
	}
	return out, nil
}

func (r *Resolver) UnreadNotificationsCount(ctx context.Context) (int32, error) {
	n, err := r.notifications.CountUnread(ctx, auth.UserFromContext(ctx))
	return int32(n), err
}

// MarkAsRead resolves to null when the caller had nothing unread from id
func (r *Resolver) MarkAsRead(ctx context.Context, args struct{ ID graphql.ID }) (*notificationResolver, error) {
	n, err := r.notifications.MarkAsRead(ctx, auth.UserFromContext(ctx), string(args.ID))
	if err != nil || n == nil {
		return nil, err
	}
	return &notificationResolver{n: n}, nil
}

func (r *Resolver) MarkAllAsRead(ctx context.Context) (int32, error) {
	n, err := r.notifications.MarkAllAsRead(ctx, auth.UserFromContext(ctx))
	return int32(n), err
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Title, Content string }) (*postResolver, error) {
	p, err := r.content.CreatePost(ctx, auth.UserFromContext(ctx), models.CreatePostRequest{Title: args.Title, Content: args.Content})
	if err != nil {
		return nil, err
	}
	return newPost(p), nil
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID      graphql.ID
	Title   *string
	Content *string
}) (*postResolver, error) {
	p, err := r.content.UpdatePost(ctx, auth.UserFromContext(ctx), string(args.ID),
		models.UpdatePostRequest{Title: args.Title, Content: args.Content})
	if err != nil {
		return nil, err
	}
	return newPost(p), nil
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	p, err := r.content.DeletePost(ctx, auth.UserFromContext(ctx), string(args.ID))
	if err != nil {
		return nil, err
	}
	return newPost(p), nil
}

func (r *Resolver) CreateComment(ctx context.Context, args struct {
	PostID  graphql.ID
	Content string
}) (*commentResolver, error) {
	c, err := r.content.CreateComment(ctx, auth.UserFromContext(ctx), string(args.PostID),
		models.CreateCommentRequest{Content: args.Content})
	if err != nil {
		return nil, err
	}
	return newComment(c), nil
}

func (r *Resolver) DeleteComment(ctx context.Context, args struct{ ID graphql.ID }) (*commentResolver, error) {
	c, err := r.content.DeleteComment(ctx, auth.UserFromContext(ctx), string(args.ID))
	if err != nil {
		return nil, err
	}
	return newComment(c), nil
}
