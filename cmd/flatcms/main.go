// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flatcms/flatcms/internal/audit"
	"github.com/flatcms/flatcms/internal/auth"
	"github.com/flatcms/flatcms/internal/config"
	"github.com/flatcms/flatcms/internal/handler"
	"github.com/flatcms/flatcms/internal/logging"
	"github.com/flatcms/flatcms/internal/middleware"
	"github.com/flatcms/flatcms/internal/repo"
	"github.com/flatcms/flatcms/internal/scheduler"
	"github.com/flatcms/flatcms/internal/session"
	"github.com/flatcms/flatcms/internal/statictext"
	"github.com/flatcms/flatcms/internal/store"
	"github.com/flatcms/flatcms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "flatCMS - Flat-File Content Management System\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_SESSION_SECRET        Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_ADMIN_PASSWORD_HASH   Argon2id hash of the admin password\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_ADMIN_PASSWORD        Plain admin password (development fallback)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_ADMIN_USERNAME        Admin username (default: admin)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_DATA_DIR              JSON data directory (default: ./data)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_PUBLIC_DIR            Static site directory (default: ./public)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_SERVER_PORT           Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FCMS_AUDIT_RETENTION_DAYS  Audit log retention, 0 keeps forever (default: 0)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Println(versionInfo)
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Open the record store; collection files are created on demand.
	slog.Info("opening record store", "dir", cfg.DataDir)
	recordStore, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}

	auditLog := audit.New(recordStore)

	// Upgrade logger to also mirror WARN and ERROR logs into the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditHandler(textHandler, auditLog))
	slog.SetDefault(logger)
	slog.Info("audit log integration enabled", "min_level", "warn")

	// Seed the admin account from config
	admin, err := auth.NewAdmin(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	slog.Info("admin account ready", "username", admin.Username)

	// Initialize session manager
	sessionManager := session.New(cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Load static texts and watch the backing file for edits
	texts := statictext.Open(recordStore)
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		if err := texts.Watch(watchCtx); err != nil {
			slog.Error("static text watcher stopped", "error", err)
		}
	}()

	// Initialize and start the audit retention scheduler
	sched := scheduler.New(auditLog, cfg.AuditRetentionDays, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Initialize login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized", "ip_rate_limit", "0.5 req/s", "burst", 5)

	r := handler.NewRouter(handler.RouterConfig{
		SessionManager:  sessionManager,
		Admin:           admin,
		Events:          repo.NewEvents(recordStore),
		Blocks:          repo.NewContentBlocks(recordStore),
		Audit:           auditLog,
		Texts:           texts,
		PublicDir:       cfg.PublicDir,
		LoginProtection: loginProtection,
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
