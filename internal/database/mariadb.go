// Package database opens the optional backing services: MariaDB for the
// settings repository and Redis for the session store. Each is opened once
// at startup and handed to its consumer by dependency injection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MariaDB driver, registered for database/sql.
	_ "github.com/go-sql-driver/mysql"

	"github.com/molinar-iot/setup-dashboard/internal/config"
)

// maxPingAttempts bounds how long startup waits for MariaDB.
const maxPingAttempts = 10

// NewMariaDB opens the settings database and waits for it to answer. The
// dashboard often starts alongside the database container, so the ping is
// retried with exponential backoff until ctx ends or the attempts run out.
func NewMariaDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := time.Second
	var pingErr error
	for attempt := 1; attempt <= maxPingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr = db.PingContext(pingCtx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		if attempt == maxPingAttempts {
			break
		}

		slog.Warn("mariadb not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, fmt.Errorf("waiting for mariadb: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("pinging mariadb after %d attempts: %w", maxPingAttempts, pingErr)
}
