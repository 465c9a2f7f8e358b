package driving

import "github.com/custodia-labs/raiz-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns current settings, with defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings.
	Save(settings domain.AppSettings) error

	// Set updates a single key by its dotted name (e.g. "api.url").
	Set(key, value string) error

	// Path returns where settings are persisted.
	Path() string
}
