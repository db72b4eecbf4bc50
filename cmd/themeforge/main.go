// Package main is the entry point for the themeforge server. It loads
// configuration, connects to the optional backing services, sets up
// routing, and starts the HTTP server with graceful shutdown support.
//
// Only the process itself is required: without PostgreSQL the stylesheet
// serves the fallback and publishing is disabled, without Valkey drafts
// go to disk and stylesheets are not cached, and without S3 fonts are
// served from their data URLs.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"themeforge/internal/bridge"
	"themeforge/internal/cache"
	"themeforge/internal/config"
	"themeforge/internal/database"
	"themeforge/internal/handlers"
	"themeforge/internal/middleware"
	"themeforge/internal/render"
	"themeforge/internal/router"
	"themeforge/internal/storage"
	"themeforge/internal/store"
	"themeforge/internal/themecss"
	"themeforge/internal/tokens"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"theme", cfg.ThemeID,
	)

	// The interface-typed variables stay nil (not typed-nil pointers) when
	// a service is unavailable, which the handlers treat as unconfigured.
	var (
		themeStore  handlers.ThemeStore
		fontLibrary handlers.FontLibrary
		snapshots   themecss.SnapshotSource
		remote      bridge.RemoteStore
		drafts      bridge.DraftStore
		cssCache    handlers.StylesheetCache
		objectStore handlers.ObjectStore
	)

	// PostgreSQL holds published themes and uploaded fonts.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Warn("database unavailable, serving fallback stylesheet and disabling publish", "error", err)
	} else {
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if cfg.ThemeSeed {
			if err := database.Seed(db, cfg.ThemeID); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
		themes := store.NewThemeStore(db)
		themeStore, snapshots, remote = themes, themes, themes
		fontLibrary = store.NewFontStore(db)
	}

	// Valkey holds editor drafts and rendered stylesheets.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, drafts stored on disk", "dir", cfg.DraftDir, "error", err)
		drafts = bridge.FileDraft{Dir: cfg.DraftDir}
	} else {
		defer valkeyClient.Close()
		drafts = cache.NewDraftCache(valkeyClient, 0)
		cssCache = cache.NewStylesheetCache(valkeyClient, cfg.ThemeCSSTTL)
	}

	// S3-compatible object storage mirrors uploaded fonts (optional).
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		objectStore = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, fonts served from data URLs")
	}

	gen := themecss.Generator{}
	if fontLibrary != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if assets, err := fontLibrary.Assets(ctx); err != nil {
			slog.Warn("failed to load font library", "error", err)
		} else {
			gen.Library = assets
		}
		cancel()
	}
	renderer := themecss.NewServerRenderer(snapshots, cfg.ThemeID, cfg.ThemeRevalidate, gen)

	bootstrap, err := themecss.BootstrapScript("")
	if err != nil {
		slog.Error("failed to build bootstrap script", "error", err)
		os.Exit(1)
	}
	pages, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	sessions := bridge.NewRegistry(drafts, remote, tokens.GradientPolicy{AllowArbitraryColors: cfg.AllowArbitraryColors})
	defer sessions.Close()

	// Create handler groups with their dependencies.
	public := handlers.NewPublic(cfg.ThemeID, renderer, cssCache, pages, bootstrap)
	h := router.Handlers{
		Public: public,
		Themes: handlers.NewThemes(themeStore, fontLibrary, public.InvalidateTheme),
		Editor: handlers.NewEditor(sessions, fontLibrary, public.InvalidateTheme),
		Fonts:  handlers.NewFonts(fontLibrary, objectStore, sessions, cfg.FontMaxBytes),
	}

	writeLimit := middleware.NewRateLimiter(60, time.Minute)
	defer writeLimit.Stop()

	r := router.New(h, cfg.AdminTokenHash, writeLimit)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
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

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
