package services

import (
	"context"
	"testing"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContentMutationsRequireViewer(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)

	_, err := e.content.CreatePost(ctx, nil, models.CreatePostRequest{Title: "title", Content: "body"})
	assert.ErrorIs(t, err, ErrNotAuthorised)
	_, err = e.content.CreateComment(ctx, nil, "p1", models.CreateCommentRequest{Content: "body"})
	assert.ErrorIs(t, err, ErrNotAuthorised)
	_, err = e.content.DeletePost(ctx, nil, "p1")
	assert.ErrorIs(t, err, ErrNotAuthorised)
}

func TestCreatePostValidates(t *testing.T) {
	e := newEnv(t, nil)
	author := e.user(t, "author")

	_, err := e.content.CreatePost(context.Background(), author, models.CreatePostRequest{Title: "x", Content: "body"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Title")
}

func TestCreatePostIgnoresUnknownMentions(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	e := newEnv(t, zap.New(core))
	author, you := e.user(t, "author"), e.user(t, "you")

	post, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{
		Title:   "mentions",
		Content: mention("ghost") + mention(you.ID) + mention(author.ID),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)

	list, err := e.notifications.List(ctx, you, repositories.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ReasonMentionedInPost, list[0].Edge.Reason)

	own, err := e.notifications.List(ctx, author, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Empty(t, own)

	warnings := logs.FilterMessage("failed to write notification").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "ghost", warnings[0].ContextMap()["target_id"])
}

func TestUpdatePostRenotifiesOnlyNewMentions(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author, you, neighbor := e.user(t, "author"), e.user(t, "you"), e.user(t, "neighbor")

	post, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "update me", Content: mention(you.ID)})
	require.NoError(t, err)
	_, err = e.notifications.MarkAsRead(ctx, you, post.ID)
	require.NoError(t, err)

	content := mention(you.ID) + " and " + mention(neighbor.ID)
	updated, err := e.content.UpdatePost(ctx, author, post.ID, models.UpdatePostRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)

	mine, err := e.notifications.List(ctx, you, repositories.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Read())

	theirs, err := e.notifications.List(ctx, neighbor, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestOnlyAuthorMayChangePost(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author, you := e.user(t, "author"), e.user(t, "you")
	post, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "mine", Content: "body"})
	require.NoError(t, err)

	title := "stolen"
	_, err = e.content.UpdatePost(ctx, you, post.ID, models.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.content.DeletePost(ctx, you, post.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := e.content.DeletePost(ctx, author, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	_, err = e.content.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author, you := e.user(t, "author"), e.user(t, "you")
	post, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "discuss", Content: "body"})
	require.NoError(t, err)

	comment, err := e.content.CreateComment(ctx, you, post.ID, models.CreateCommentRequest{Content: "nice one"})
	require.NoError(t, err)

	list, err := e.notifications.List(ctx, author, repositories.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ReasonCommentedOnPost, list[0].Edge.Reason)
	assert.Equal(t, comment.ID, list[0].From.NodeID())
	assert.Equal(t, models.SourceKindComment, list[0].From.Kind())

	_, err = e.content.CreateComment(ctx, author, post.ID, models.CreateCommentRequest{Content: "thanks"})
	require.NoError(t, err)
	count, err := e.notifications.CountUnread(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateCommentValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author := e.user(t, "author")
	post, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "discuss", Content: "body"})
	require.NoError(t, err)

	_, err = e.content.CreateComment(ctx, author, post.ID, models.CreateCommentRequest{Content: "<p>  </p>"})
	assert.EqualError(t, err, "Comment must be at least 1 character long!")

	_, err = e.content.CreateComment(ctx, author, "", models.CreateCommentRequest{Content: "hello"})
	assert.EqualError(t, err, "Comment cannot be created without a post!")

	_, err = e.content.CreateComment(ctx, author, "missing", models.CreateCommentRequest{Content: "hello"})
	assert.EqualError(t, err, "Comment cannot be created without a post!")

	_, err = e.content.DeletePost(ctx, author, post.ID)
	require.NoError(t, err)
	_, err = e.content.CreateComment(ctx, author, post.ID, models.CreateCommentRequest{Content: "hello"})
	assert.EqualError(t, err, "Comment cannot be created without a post!")
}

func TestDeleteCommentHidesNotification(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, nil)
	author, you := e.user(t, "author"), e.user(t, "you")
	post, err := e.content.CreatePost(ctx, author, models.CreatePostRequest{Title: "discuss", Content: "body"})
	require.NoError(t, err)
	comment, err := e.content.CreateComment(ctx, you, post.ID, models.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)

	_, err = e.content.DeleteComment(ctx, author, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := e.content.DeleteComment(ctx, you, comment.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Deleted)

	list, err := e.notifications.List(ctx, author, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = e.content.DeleteComment(ctx, you, comment.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
