package main

import (
	"context"
	"testing"

	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/pkg/config"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeed(t *testing.T) {
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

	ctx := context.Background()
	repos := config.PostgresRepositories(db)
	require.NoError(t, seed(ctx, repos, zap.NewNop()))

	all, err := repos.Notifications.List(ctx, "you", repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	unread := false
	fresh, err := repos.Notifications.List(ctx, "you", repositories.NotificationFilter{Read: &unread, OrderBy: models.OrderCreatedAtAsc})
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, models.SourceKindPost, fresh[0].From.Kind())
	assert.Equal(t, models.SourceKindComment, fresh[1].From.Kind())

	neighbor, err := repos.Notifications.CountUnread(ctx, "neighbor")
	require.NoError(t, err)
	assert.Equal(t, int64(2), neighbor)
}
