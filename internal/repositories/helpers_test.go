package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

// tickingClock returns a clock that advances one second per call
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

type fixture struct {
	db            *gorm.DB
	users         *PostgresUserRepository
	posts         *PostgresPostRepository
	comments      *PostgresCommentRepository
	notifications NotificationRepository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:            db,
		users:         NewPostgresUserRepository(db),
		posts:         NewPostgresPostRepository(db),
		comments:      NewPostgresCommentRepository(db),
		notifications: NewPostgresNotificationRepository(db, WithClock(tickingClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))),
	}
}

func (f *fixture) user(t *testing.T, id string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: id, Email: id + "@example.org"}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) post(t *testing.T, id string, author *models.User) *models.Post {
	t.Helper()
	p := &models.Post{ID: id, AuthorID: author.ID, Author: author, Title: id, Content: "content of " + id}
	require.NoError(t, f.posts.CreatePost(context.Background(), p))
	return p
}

func (f *fixture) comment(t *testing.T, id string, post *models.Post, author *models.User) *models.Comment {
	t.Helper()
	c := &models.Comment{ID: id, PostID: post.ID, Post: post, AuthorID: author.ID, Author: author, Content: "comment " + id}
	require.NoError(t, f.comments.CreateComment(context.Background(), c))
	return c
}

func (f *fixture) notify(t *testing.T, source models.Source, target *models.User, reason models.Reason) {
	t.Helper()
	created, err := f.notifications.Upsert(context.Background(), source, target.ID, reason)
	require.NoError(t, err)
	require.True(t, created)
}

func sourceIDs(list []models.Notification) []string {
	ids := make([]string, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.From.NodeID())
	}
	return ids
}

func boolPtr(b bool) *bool { return &b }
