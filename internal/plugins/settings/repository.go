package settings

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"sync"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
)

// SettingsRepository defines the data access contract for tab settings.
// Values are stored exactly as given; sealing happens in the service.
type SettingsRepository interface {
	// GetTab returns every stored key of tab. A tab never saved returns an
	// empty map.
	GetTab(ctx context.Context, tab string) (map[string]string, error)

	// SetTab upserts values into tab. Keys not in values are left alone.
	SetTab(ctx context.Context, tab string, values map[string]string) error
}

// settingsRepository implements SettingsRepository using MariaDB.
type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository backed by MariaDB.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetTab reads every row of tab.
func (r *settingsRepository) GetTab(ctx context.Context, tab string) (map[string]string, error) {
	query := `SELECT setting_key, setting_value FROM device_settings WHERE tab = ?`

	rows, err := r.db.QueryContext(ctx, query, tab)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("querying settings for %s: %w", tab, err))
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("scanning setting row: %w", err))
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("iterating settings: %w", err))
	}
	return result, nil
}

// SetTab upserts all values in one transaction using INSERT ... ON
// DUPLICATE KEY UPDATE.
func (r *settingsRepository) SetTab(ctx context.Context, tab string, values map[string]string) error {
	query := `INSERT INTO device_settings (tab, setting_key, setting_value)
	          VALUES (?, ?, ?)
	          ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("beginning settings transaction: %w", err))
	}
	defer tx.Rollback() //nolint:errcheck

	for key, value := range values {
		if _, err := tx.ExecContext(ctx, query, tab, key, value); err != nil {
			return apperror.NewInternal(fmt.Errorf("upserting setting %s.%s: %w", tab, key, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return apperror.NewInternal(fmt.Errorf("committing settings for %s: %w", tab, err))
	}
	return nil
}

// memoryRepository keeps settings in process memory. Used when no
// database is configured and in tests.
type memoryRepository struct {
	mu   sync.RWMutex
	tabs map[string]map[string]string
}

// NewMemoryRepository creates an empty in-memory settings repository.
func NewMemoryRepository() SettingsRepository {
	return &memoryRepository{tabs: make(map[string]map[string]string)}
}

func (r *memoryRepository) GetTab(_ context.Context, tab string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.tabs[tab]))
	maps.Copy(out, r.tabs[tab])
	return out, nil
}

func (r *memoryRepository) SetTab(_ context.Context, tab string, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tabs[tab] == nil {
		r.tabs[tab] = make(map[string]string, len(values))
	}
	maps.Copy(r.tabs[tab], values)
	return nil
}
