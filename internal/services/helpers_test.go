package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type env struct {
	users         *repositories.PostgresUserRepository
	content       *ContentService
	notifications *NotificationService
}

func newEnv(t *testing.T, log *zap.Logger) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repositories.Migrate(db))

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	notifRepo := repositories.NewPostgresNotificationRepository(db, repositories.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	return &env{
		users: repositories.NewPostgresUserRepository(db),
		content: NewContentService(
			repositories.NewPostgresPostRepository(db),
			repositories.NewPostgresCommentRepository(db),
			NewNotifier(notifRepo, log),
			log,
		),
		notifications: NewNotificationService(notifRepo, log),
	}
}

func (e *env) user(t *testing.T, id string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: id, Email: id + "@example.org"}
	require.NoError(t, e.users.CreateUser(context.Background(), u))
	return u
}

func mention(id string) string {
	return fmt.Sprintf(`<a class="mention" data-mention-id="%s" href="/profile/%s">@%s</a>`, id, id, id)
}

func sourceIDs(list []models.Notification) []string {
	ids := make([]string, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.From.NodeID())
	}
	return ids
}

func boolPtr(b bool) *bool { return &b }

// storeSpy fails the test on any store access
type storeSpy struct {
	t *testing.T
}

func (s storeSpy) fail() {
	s.t.Helper()
	s.t.Fatal("store must not be accessed")
}

func (s storeSpy) Upsert(context.Context, models.Source, string, models.Reason) (bool, error) {
	s.fail()
	return false, nil
}

func (s storeSpy) List(context.Context, string, repositories.NotificationFilter) ([]models.Notification, error) {
	s.fail()
	return nil, nil
}

func (s storeSpy) MarkAsRead(context.Context, string, string) (*models.Notification, error) {
	s.fail()
	return nil, nil
}

func (s storeSpy) MarkAllAsRead(context.Context, string) (int64, error) {
	s.fail()
	return 0, nil
}

func (s storeSpy) CountUnread(context.Context, string) (int64, error) {
	s.fail()
	return 0, nil
}
