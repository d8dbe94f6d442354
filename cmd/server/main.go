package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/purposeful/purposeful-backend/internal/api"
	"github.com/purposeful/purposeful-backend/internal/cache"
	"github.com/purposeful/purposeful-backend/internal/config"
	"github.com/purposeful/purposeful-backend/internal/repository/postgres"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/purposeful/purposeful-backend/internal/storage"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logLevel := logger.Warn
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL, logLevel)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	integrations := service.Integrations{Notifier: hub}

	// Redis backs the reaction counter and the rate limiter
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		integrations.Counter = cache.NewReactionCounter(redisClient)
		log.Println("Redis connected")
	} else {
		log.Println("REDIS_URL not set, reaction cache and rate limiting disabled")
	}

	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to create minio client: %v", err)
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("failed to prepare bucket %s: %v", cfg.MinIO.Bucket, err)
		}
		integrations.Images = store
		log.Printf("Image uploads enabled (bucket: %s)", cfg.MinIO.Bucket)
	}

	services := service.NewServices(repos, cfg, integrations)
	router := api.NewRouter(services, hub, redisClient, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	hub.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("failed to close redis client: %v", err)
		}
	}

	log.Println("Server stopped")
}
