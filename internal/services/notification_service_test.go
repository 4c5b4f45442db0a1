package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationServiceRequiresViewer(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(storeSpy{t: t}, nil)

	_, err := svc.List(ctx, nil, repositories.NotificationFilter{})
	assert.ErrorIs(t, err, ErrNotAuthorised)
	assert.EqualError(t, err, "Not Authorised!")

	_, err = svc.MarkAsRead(ctx, nil, "p1")
	assert.ErrorIs(t, err, ErrNotAuthorised)

	_, err = svc.MarkAllAsRead(ctx, nil)
	assert.ErrorIs(t, err, ErrNotAuthorised)

	_, err = svc.CountUnread(ctx, nil)
	assert.ErrorIs(t, err, ErrNotAuthorised)
}

func TestNotificationServiceRejectsNegativePaging(t *testing.T) {
	svc := NewNotificationService(storeSpy{t: t}, nil)

	_, err := svc.List(context.Background(), &models.User{ID: "you"}, repositories.NotificationFilter{First: -1})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

// The scenario mirrors a typical feed: two users are mentioned across posts
// and comments, and one of the posts is deleted afterwards.
func TestNotificationScenario(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author, you, neighbor := e.user(t, "author"), e.user(t, "you"), e.user(t, "neighbor")

	_, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "first post", Content: "Hey " + mention(neighbor.ID)})
	require.NoError(t, err)
	seen, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "already seen", Content: "Hey " + mention(you.ID)})
	require.NoError(t, err)
	mentioned, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "have been mentioned", Content: "Hey " + mention(you.ID)})
	require.NoError(t, err)

	c1, err := e.content.CreateComment(ctx, author, mentioned.ID, models.CreateCommentRequest{Content: "c1 " + mention(you.ID)})
	require.NoError(t, err)
	c2, err := e.content.CreateComment(ctx, author, mentioned.ID, models.CreateCommentRequest{Content: "c2 " + mention(you.ID)})
	require.NoError(t, err)
	_, err = e.content.CreateComment(ctx, author, mentioned.ID, models.CreateCommentRequest{Content: "c3 " + mention(neighbor.ID)})
	require.NoError(t, err)

	for _, id := range []string{seen.ID, c1.ID} {
		n, err := e.notifications.MarkAsRead(ctx, you, id)
		require.NoError(t, err)
		require.NotNil(t, n)
	}

	all, err := e.notifications.List(ctx, you, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{c2.ID, c1.ID, mentioned.ID, seen.ID}, sourceIDs(all))

	unread, err := e.notifications.List(ctx, you, repositories.NotificationFilter{Read: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, []string{c2.ID, mentioned.ID}, sourceIDs(unread))

	count, err := e.notifications.CountUnread(ctx, you)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = e.content.DeletePost(ctx, author, mentioned.ID)
	require.NoError(t, err)

	unread, err = e.notifications.List(ctx, you, repositories.NotificationFilter{Read: boolPtr(false)})
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err = e.notifications.List(ctx, you, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{seen.ID}, sourceIDs(all))

	theirs, err := e.notifications.List(ctx, neighbor, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestMarkAllAsRead(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author, you := e.user(t, "author"), e.user(t, "you")
	for _, title := range []string{"one", "two", "three"} {
		_, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: title, Content: mention(you.ID)})
		require.NoError(t, err)
	}

	marked, err := e.notifications.MarkAllAsRead(ctx, you)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	marked, err = e.notifications.MarkAllAsRead(ctx, you)
	require.NoError(t, err)
	assert.Zero(t, marked)
}
