package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/helprly/job-assistant/internal/api/router"
	"github.com/helprly/job-assistant/internal/catalog"
	"github.com/helprly/job-assistant/internal/chat"
	appconfig "github.com/helprly/job-assistant/internal/config"
	"github.com/helprly/job-assistant/internal/helpers"
	"github.com/helprly/job-assistant/internal/observability/metrics"
	"github.com/helprly/job-assistant/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel).With("instance_id", uuid.NewString())
	logger.Info("starting job-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Reference data: Postgres when configured, built-in seed data otherwise.
	var (
		categoryRepo catalog.Repository
		helperRepo   helpers.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		categoryRepo = catalog.NewPostgresRepository(pool)
		helperRepo = helpers.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using built-in reference data")
		categoryRepo = catalog.NewInMemoryRepository(catalog.DefaultCategories(), catalog.DefaultQuestions())
		helperRepo = helpers.NewInMemoryRepository(helpers.DefaultHelpers())
	}

	// Conversation state: Redis when reachable. Development runs may fall
	// back to process memory; production refuses to start without Redis.
	var states chat.StateStore = chat.NewMemoryStateStore()
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err := redisClient.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		if cfg.Env != "development" {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		logger.Warn("redis unreachable, conversation state will not survive restarts",
			"addr", cfg.RedisAddr, "error", err)
		_ = redisClient.Close()
	} else {
		defer func() { _ = redisClient.Close() }()
		states = chat.NewRedisStateStore(redisClient, cfg.StateTTL, nil)
	}

	chatMetrics := metrics.NewChatMetrics(prometheus.DefaultRegisterer)
	service := chat.NewService(states, categoryRepo, helperRepo, chatMetrics, logger)
	chatHandler := chat.NewHandler(service, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
