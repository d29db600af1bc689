// Package main is the entry point for the blog API server.
// It loads configuration, connects to SurrealDB, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/handlers"
	"blogapi/internal/router"
	"blogapi/internal/service"
	"blogapi/internal/storage"
	"blogapi/internal/store"
)

func main() {
	// Structured logger — text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to SurrealDB.
	db := database.NewClient(database.Options{
		URL:       cfg.DBURL,
		Namespace: cfg.DBNamespace,
		Database:  cfg.DBDatabase,
		Username:  cfg.DBUser,
		Password:  cfg.DBPassword,
	}, logger)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Connect(connectCtx); err != nil {
		cancelConnect()
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.EnsureIndexes(connectCtx); err != nil {
		cancelConnect()
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	cancelConnect()

	// In-process read cache in front of the post store.
	readCache := cache.New(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Connect to S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db.DB())
	postStore := store.NewPostStore(db.DB(), readCache)
	categoryStore := store.NewCategoryStore(db.DB())
	commentStore := store.NewCommentStore(db.DB())
	mediaStore := store.NewMediaStore(db.DB())

	// Token service for issuing and verifying session tokens.
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	// Application services.
	authService := service.NewAuthService(userStore, tokens, logger)
	postService := service.NewPostService(postStore, categoryStore, userStore, logger)
	categoryService := service.NewCategoryService(categoryStore, logger)
	commentService := service.NewCommentService(commentStore, postStore, logger)

	var objects service.ObjectStore
	if storageClient != nil {
		objects = storageClient
	}
	mediaService := service.NewMediaService(mediaStore, objects, logger)

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, router.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Posts:      handlers.NewPostHandler(postService),
		Categories: handlers.NewCategoryHandler(categoryService),
		Comments:   handlers.NewCommentHandler(commentService, authService),
		Media:      handlers.NewMediaHandler(mediaService),
	})

	// Create the HTTP server with sensible timeouts. ReadTimeout must
	// accommodate media uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections
	// before tearing down the cache and the database connection.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	readCache.Stop()

	if err := db.Close(ctx); err != nil {
		slog.Error("failed to close database", "error", err)
	}

	slog.Info("server stopped gracefully")
}
