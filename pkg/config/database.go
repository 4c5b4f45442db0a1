package config

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/repositories"
	"github.com/anonto42/nano-midea/graph-backend/internal/repositories/graphdb"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Repositories is the storage a running server needs
type Repositories struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Notifications repositories.NotificationRepository
}

// DB holds the connection of the selected graph backend
type DB struct {
	Postgres *gorm.DB
	Neo4j    neo4j.DriverWithContext
	Repos    Repositories
	log      *zap.Logger
}

// InitDB connects to the configured backend, prepares its schema and builds
// the repositories on top of it.
func InitDB(ctx context.Context, cfg *Config, log *zap.Logger) (*DB, error) {
	switch cfg.GraphBackend {
	case BackendNeo4j:
		driver, err := initNeo4j(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
		}
		store := graphdb.NewStore(driver, cfg.Neo4jDatabase)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = driver.Close(ctx)
			return nil, err
		}
		log.Info("connected to Neo4j", zap.String("uri", cfg.Neo4jURI))
		return &DB{
			Neo4j: driver,
			Repos: Repositories{
				Users:         graphdb.NewUserRepository(store),
				Posts:         graphdb.NewPostRepository(store),
				Comments:      graphdb.NewCommentRepository(store),
				Notifications: graphdb.NewNotificationRepository(store),
			},
			log: log,
		}, nil
	default:
		db, err := initPostgres(cfg.PostgresConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := repositories.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate models: %w", err)
		}
		log.Info("connected to PostgreSQL, auto-migrations completed")
		return &DB{
			Postgres: db,
			Repos:    PostgresRepositories(db),
			log:      log,
		}, nil
	}
}

// PostgresRepositories builds the gorm backed repositories on db
func PostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         repositories.NewPostgresUserRepository(db),
		Posts:         repositories.NewPostgresPostRepository(db),
		Comments:      repositories.NewPostgresCommentRepository(db),
		Notifications: repositories.NewPostgresNotificationRepository(db),
	}
}

func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func initNeo4j(ctx context.Context, cfg *Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUsername, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}
	return driver, nil
}

// CloseDB closes the backend connection
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.log.Error("error getting SQL DB from GORM", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.log.Error("error closing PostgreSQL connection", zap.Error(err))
		} else {
			db.log.Info("PostgreSQL connection closed")
		}
	}

	if db.Neo4j != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Neo4j.Close(ctx); err != nil {
			db.log.Error("error closing Neo4j driver", zap.Error(err))
		} else {
			db.log.Info("Neo4j driver closed")
		}
	}
}
