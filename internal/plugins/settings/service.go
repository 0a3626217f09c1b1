package settings

import (
	"context"
	"fmt"
	"log/slog"
)

// SettingsService defines the business logic contract for the settings
// tabs.
type SettingsService interface {
	// Values returns tab's current values with defaults filled in and
	// secrets opened.
	Values(ctx context.Context, tab Tab) (map[string]string, error)

	// Save validates form and stores it. Invalid input returns the field
	// errors and stores nothing.
	Save(ctx context.Context, tab Tab, form map[string]string) (FieldErrors, error)
}

type settingsService struct {
	repo   SettingsRepository
	sealer *Sealer
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo SettingsRepository, sealer *Sealer) SettingsService {
	return &settingsService{repo: repo, sealer: sealer}
}

// storageKey namespaces a field inside its tab for sealing.
func storageKey(t Tab, name string) string {
	return t.Slug() + "." + name
}

func (s *settingsService) Values(ctx context.Context, tab Tab) (map[string]string, error) {
	stored, err := s.repo.GetTab(ctx, tab.Slug())
	if err != nil {
		return nil, err
	}

	values := defaults(tab)
	for _, f := range schema[tab].fields {
		raw, ok := stored[f.name]
		if !ok {
			continue
		}
		if !f.secret {
			values[f.name] = raw
			continue
		}
		plain, err := s.sealer.Open(storageKey(tab, f.name), raw)
		if err != nil {
			// A secret that no longer opens (rotated SECRET_KEY) reads as unset.
			slog.Warn("dropping unreadable secret setting",
				slog.String("tab", tab.Slug()),
				slog.String("field", f.name),
				slog.Any("error", err),
			)
			continue
		}
		values[f.name] = plain
	}
	return values, nil
}

func (s *settingsService) Save(ctx context.Context, tab Tab, form map[string]string) (FieldErrors, error) {
	errs := FieldErrors{}
	toStore := make(map[string]string, len(schema[tab].fields))

	for _, f := range schema[tab].fields {
		value := normalize(f, form[f.name])
		if key := validate(f, value); key != "" {
			errs[f.name] = key
			continue
		}
		if f.secret {
			if value == "" {
				continue
			}
			sealed, err := s.sealer.Seal(storageKey(tab, f.name), value)
			if err != nil {
				return nil, fmt.Errorf("sealing %s: %w", f.name, err)
			}
			value = sealed
		}
		toStore[f.name] = value
	}
	if len(errs) > 0 {
		return errs, nil
	}

	if err := s.repo.SetTab(ctx, tab.Slug(), toStore); err != nil {
		return nil, err
	}
	slog.Info("settings saved", slog.String("tab", tab.Slug()), slog.Int("fields", len(toStore)))
	return nil, nil
}
