package router

import (
	"fmt"

	"github.com/anonto42/nano-midea/graph-backend/internal/gql"
	"github.com/anonto42/nano-midea/graph-backend/internal/handlers"
	"github.com/anonto42/nano-midea/graph-backend/internal/services"
	"github.com/anonto42/nano-midea/graph-backend/pkg/config"
	"github.com/anonto42/nano-midea/graph-backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies are the collaborators SetupRoutes wires together
type Dependencies struct {
	Repos config.Repositories
	// Auth resolves the caller; it must let anonymous requests through
	Auth echo.MiddlewareFunc
	Log  *zap.Logger
}

// SetupRoutes builds the services and registers REST, GraphQL, health and
// metrics endpoints on e.
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Auth == nil {
		deps.Auth = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	e.Validator = validators.NewValidator()

	notifier := services.NewNotifier(deps.Repos.Notifications, log)
	content := services.NewContentService(deps.Repos.Posts, deps.Repos.Comments, notifier, log)
	notifications := services.NewNotificationService(deps.Repos.Notifications, log)

	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	schema, err := gql.NewSchema(content, notifications)
	if err != nil {
		return fmt.Errorf("parse graphql schema: %w", err)
	}
	e.POST("/graphql", echo.WrapHandler(gql.Handler(schema)), deps.Auth)
	log.Info("GraphQL endpoint configured", zap.String("path", "/graphql"))

	api := e.Group("/api/v1")
	api.Use(deps.Auth)

	handlers.NewUserHandler(deps.Repos.Users).RegisterProfileRoutes(api)
	handlers.NewPostHandler(content).RegisterPostRoutes(api)
	handlers.NewCommentHandler(content).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notifications).RegisterNotificationRoutes(api)
	log.Info("REST routes configured", zap.String("prefix", "/api/v1"))
	return nil
}
