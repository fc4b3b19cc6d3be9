// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Command vegaplay runs the Vegaplay content API server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vegaplay/vegaplay-go/internal/audit"
	"github.com/vegaplay/vegaplay-go/internal/config"
	"github.com/vegaplay/vegaplay-go/internal/content"
	"github.com/vegaplay/vegaplay-go/internal/filestore"
	"github.com/vegaplay/vegaplay-go/internal/handler"
	"github.com/vegaplay/vegaplay-go/internal/i18n"
	"github.com/vegaplay/vegaplay-go/internal/logging"
	"github.com/vegaplay/vegaplay-go/internal/mailer"
	"github.com/vegaplay/vegaplay-go/internal/middleware"
	"github.com/vegaplay/vegaplay-go/internal/ratelimit"
	"github.com/vegaplay/vegaplay-go/internal/scheduler"
	"github.com/vegaplay/vegaplay-go/internal/session"
	"github.com/vegaplay/vegaplay-go/internal/store"
)

// Version information, injected at build time.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("vegaplay %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if dbDir := filepath.Dir(cfg.DBPath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Audit trail: SQLite primary, JSON file fallback. The recorder
	// keeps a plain logger so its own errors never loop back through
	// the audit handler.
	recorder := audit.NewRecorder(
		store.NewAuditStore(db),
		filestore.NewAuditStore(cfg.DataDir),
		logger,
	)

	// Mirror WARN and ERROR logs into the audit trail.
	logger = slog.New(logging.NewAuditHandler(textHandler, recorder))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Content: SQLite primary with JSON file fallback.
	contentStore := content.NewFailover(
		store.NewContentStore(db),
		filestore.NewContentStore(cfg.DataDir),
		logger,
	)
	contentService := content.NewService(contentStore)

	// Rate limiting: Redis when configured, otherwise in-process.
	var limiter ratelimit.Limiter
	if cfg.UseRedisLimiter() {
		redisLimiter, err := ratelimit.NewRedisLimiter(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() {
			if err := redisLimiter.Close(); err != nil {
				slog.Error("error closing redis connection", "error", err)
			}
		}()
		limiter = redisLimiter
		slog.Info("rate limiting backed by redis")
	} else {
		limiter = ratelimit.NewMemoryLimiter()
		slog.Info("rate limiting in process memory")
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	sender := mailer.NewSender(cfg, logger)
	lockout := middleware.NewLoginProtection()

	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	h := handler.New(cfg, db, contentService, recorder, sessionManager, sender, lockout)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(limiter),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
