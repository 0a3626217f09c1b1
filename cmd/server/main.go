// Package main is the entry point for the setup dashboard server. It loads
// configuration, opens the session and settings stores, wires the device
// client into the plugins, and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/molinar-iot/setup-dashboard/internal/app"
	"github.com/molinar-iot/setup-dashboard/internal/config"
	"github.com/molinar-iot/setup-dashboard/internal/database"
	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/settings"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Configure structured logging based on environment.
	setupLogging(cfg)

	slog.Info("starting setup dashboard",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("session_store", cfg.Session.Store),
		slog.String("settings_store", cfg.Settings.Store),
	)

	ctx := context.Background()

	// --- Device Client ---
	client := device.NewClient(device.Timeouts{
		Validate: cfg.Device.ValidateTimeout,
		Login:    cfg.Device.LoginTimeout,
		Logout:   cfg.Device.LogoutTimeout,
		Request:  cfg.Device.RequestTimeout,
	}, nil)

	// --- Session Store ---
	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	sessions := session.NewManager(store, client, session.HostConfig{
		GatewayURL: cfg.Device.GatewayURL,
		HostAPI:    cfg.Device.HostAPI,
	})

	codec, err := session.NewCookieCodec(cfg.SecretKey)
	if err != nil {
		slog.Error("failed to create cookie codec", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Settings Repository ---
	sealer, err := settings.NewSealer(cfg.SecretKey)
	if err != nil {
		slog.Error("failed to create settings sealer", slog.Any("error", err))
		os.Exit(1)
	}

	repo, closeRepo, err := openSettingsRepository(ctx, cfg)
	if err != nil {
		slog.Error("failed to open settings store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeRepo()

	// --- Create Application ---
	application, err := app.New(cfg, app.Deps{
		Sessions: sessions,
		Codec:    codec,
		Device:   client,
		Settings: repo,
		Sealer:   sealer,
	})
	if err != nil {
		slog.Error("failed to create application", slog.Any("error", err))
		os.Exit(1)
	}

	application.RegisterRoutes()

	// --- Graceful Shutdown ---
	// Listen for interrupt/term signals to drain connections cleanly.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		// Uploads to the device can take a while; give them time to finish.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(ctx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// --- Start Server ---
	if err := application.Start(); err != nil {
		// Echo returns http.ErrServerClosed on graceful shutdown, which is expected.
		slog.Info("server stopped", slog.Any("reason", err))
	}
}

// openSessionStore builds the configured session backend. The returned
// func releases whatever connection the backend holds.
func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("connected to Redis")
		return session.NewRedisStore(rdb, cfg.Session.Name, cfg.Session.TTL), closer(rdb), nil
	case config.SessionStoreMemory:
		slog.Warn("using in-memory session store; sessions are lost on restart")
		return session.NewMemoryStore(), func() {}, nil
	default:
		fs, err := session.NewFileStore(cfg.Session.FilePath, cfg.Session.Name, cfg.Session.TTL)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// openSettingsRepository builds the configured settings backend, running
// migrations first when it is MariaDB.
func openSettingsRepository(ctx context.Context, cfg *config.Config) (settings.SettingsRepository, func(), error) {
	if cfg.Settings.Store != config.SettingsStoreMariaDB {
		return settings.NewMemoryRepository(), func() {}, nil
	}

	db, err := database.NewMariaDB(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("connected to MariaDB")

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	return settings.NewSettingsRepository(db), closer(db), nil
}

func closer[T interface{ Close() error }](c T) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Warn("closing connection", slog.Any("error", err))
		}
	}
}

// setupLogging configures the global slog logger based on the environment.
// Development uses text format at debug level. Production uses JSON at info
// level for structured log aggregation. LOG_LEVEL overrides either level.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	if cfg.LogLevel != "" {
		level = parseLevel(cfg.LogLevel)
	}

	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
