package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-midea/graph-backend/internal/middleware"
	"github.com/anonto42/nano-midea/graph-backend/internal/router"
	"github.com/anonto42/nano-midea/graph-backend/pkg/config"
	"github.com/anonto42/nano-midea/graph-backend/pkg/firebase"
	"github.com/anonto42/nano-midea/graph-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{Level: cfg.LogLevel, Filename: cfg.LogFile, Stdout: true})
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Firebase ID tokens take precedence over locally signed JWTs when configured
	authMiddleware := middleware.JWTAuthMiddleware(cfg.JWTSecret, db.Repos.Users)
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
		if err != nil {
			log.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		authMiddleware = middleware.FirebaseAuthMiddleware(app.AuthClient, db.Repos.Users)
	}

	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e, log)
	if err := router.SetupRoutes(e, router.Dependencies{Repos: db.Repos, Auth: authMiddleware, Log: log}); err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("backend", cfg.GraphBackend))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
