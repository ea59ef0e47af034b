package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forum_backend/config"
	"forum_backend/db"
	"forum_backend/forum"
	"forum_backend/logging"
	"forum_backend/metrics"
	"forum_backend/middleware"
	"forum_backend/moderation"
	"forum_backend/routes"
	"forum_backend/sensor"
	"forum_backend/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	dataStore, err := openStore(ctx, cfg, clock)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dataStore.Close(closeCtx); err != nil {
			slog.Warn("Failed to close store", "error", err)
		}
	}()

	if cfg.SeedData {
		n, err := store.SeedData(ctx, dataStore)
		if err != nil {
			slog.Warn("Error seeding initial data", "error", err)
		} else if n > 0 {
			slog.Info("Seeded initial posts", "count", n)
		}
	}

	history, closeHistory, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	forumMetrics := metrics.NewForumMetrics(registry)

	gate := moderation.NewGate(moderation.NewWordListFilter(), moderation.NewVaderScorer())
	forumService := forum.NewService(dataStore, gate, forumMetrics)

	feed := sensor.NewFeed(sensor.NewSampler(nil, clock), history, clock, cfg.SensorInterval, cfg.SensorRetention)
	go feed.Run(ctx)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), httpMetrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
	}
	r.Use(cors.New(corsConfig))

	routes.SetupRoutes(r, routes.Dependencies{
		Store:    dataStore,
		Forum:    forumService,
		Tokens:   middleware.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL, clock),
		Feed:     feed,
		Limiter:  middleware.NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, clock),
		Registry: registry,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.ServerPort, "storage", cfg.StorageType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (store.Store, error) {
	switch cfg.StorageType {
	case config.StorageMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		s := store.NewMongoStore(client, cfg.MongoDatabase, clock)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("error ensuring mongo indexes: %w", err)
		}
		return s, nil

	case config.StoragePostgres:
		database, err := db.ConnectPostgres(ctx, cfg.PostgresURL())
		if err != nil {
			return nil, err
		}
		if err := db.InitSchema(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("error initializing database schema: %w", err)
		}
		return store.NewPostgresStore(database), nil

	default:
		slog.Warn("Using in-memory storage, data is lost on restart")
		return store.NewMemoryStore(clock), nil
	}
}

func openHistory(ctx context.Context, cfg *config.Config) (sensor.History, func(), error) {
	if cfg.RedisURL == "" {
		return sensor.NewMemoryHistory(cfg.SensorRetention), func() {}, nil
	}

	rdb, err := sensor.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return sensor.NewRedisHistory(rdb, cfg.SensorRetention), func() { _ = rdb.Close() }, nil
}
