package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pageza/nutriapp/backend/config"
	"github.com/pageza/nutriapp/backend/internal/database"
	"github.com/pageza/nutriapp/backend/internal/logger"
	"github.com/pageza/nutriapp/backend/internal/server"
	"github.com/pageza/nutriapp/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("api", cfg.LogLevel, cfg.Environment == config.Production)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, getMigrationsDir(), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	opts := server.Options{
		Google: service.NewGoogleVerifier(cfg.GoogleClientID),
	}

	// Redis is optional; without it plans are not cached and generation is not rate limited
	if cfg.RedisURL != "" || cfg.RedisHost != "" {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("continuing without redis", zap.Error(err))
		} else {
			opts.Redis = client
			defer client.Close()
		}
	}

	if cfg.S3BucketName != "" {
		storage, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatal("failed to initialize S3", zap.Error(err))
		}
		opts.Storage = storage
	} else {
		log.Info("S3_BUCKET_NAME not set, recipe image uploads are disabled")
	}

	srv := server.New(cfg, db, log, opts)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
		return
	}
	log.Info("server stopped")
}

func getMigrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "migrations"
}
