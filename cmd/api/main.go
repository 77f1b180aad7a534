package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/intakelog/backend/config"
	"github.com/intakelog/backend/internal/database"
	"github.com/intakelog/backend/internal/server"
	"github.com/intakelog/backend/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if config.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	// Backfill recipe pages for food items that predate them.
	defaultUser, err := uuid.Parse(cfg.DefaultUserID)
	if err != nil {
		logger.WithError(err).Fatal("invalid default user id")
	}
	if err := service.NewRecipeService(db).EnsureRecipePages(context.Background(), defaultUser); err != nil {
		logger.WithError(err).Fatal("failed to backfill recipe pages")
	}

	// Redis is optional; without it day totals are computed on every request.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, day totals cache disabled")
		redisClient = nil
	}

	srv, err := server.NewServer(db, redisClient, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build server")
	}

	port := cfg.ServerPort
	if port == "" {
		port = "8080"
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.WithError(err).Fatal("server shutdown error")
	}
	logger.Info("server stopped")
}
