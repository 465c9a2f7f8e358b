package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIURL                 = "api.url"
	KeyAPITimeout             = "api.timeout"
	KeyAPIRateLimit           = "api.rate_limit"
	KeyBulkConcurrency        = "curator.bulk_concurrency"
	KeyClearSelectionOnFilter = "curator.clear_selection_on_filter"
	KeySessionBackend         = "session.backend"
)

// SettingKeys lists every key accepted by Set.
var SettingKeys = []string{
	KeyAPIURL,
	KeyAPITimeout,
	KeyAPIRateLimit,
	KeyBulkConcurrency,
	KeyClearSelectionOnFilter,
	KeySessionBackend,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   strings.TrimRight(s.getString(KeyAPIURL, defaults.API.BaseURL), "/"),
			Timeout:   s.getDuration(KeyAPITimeout, defaults.API.Timeout),
			RateLimit: s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
		},
		Curator: domain.CuratorSettings{
			BulkConcurrency:        s.getInt(KeyBulkConcurrency, defaults.Curator.BulkConcurrency),
			ClearSelectionOnFilter: s.getBool(KeyClearSelectionOnFilter, defaults.Curator.ClearSelectionOnFilter),
		},
		Session: s.getBackend(defaults.Session),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyAPIURL, settings.API.BaseURL},
		{KeyAPITimeout, settings.API.Timeout.String()},
		{KeyAPIRateLimit, settings.API.RateLimit},
		{KeyBulkConcurrency, settings.Curator.BulkConcurrency},
		{KeyClearSelectionOnFilter, settings.Curator.ClearSelectionOnFilter},
		{KeySessionBackend, string(settings.Session)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// Set updates a single key from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyAPIURL:
		settings.API.BaseURL = strings.TrimRight(value, "/")
	case KeyAPITimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.API.Timeout = d
	case KeyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.API.RateLimit = f
	case KeyBulkConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Curator.BulkConcurrency = n
	case KeyClearSelectionOnFilter:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Curator.ClearSelectionOnFilter = b
	case KeySessionBackend:
		settings.Session = domain.SessionBackend(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(*settings)
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getBackend(defaultVal domain.SessionBackend) domain.SessionBackend {
	val := s.configStore.GetString(KeySessionBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.SessionBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

// SettingValue returns the string form of one key, as accepted by Set.
func SettingValue(settings domain.AppSettings, key string) (string, error) {
	switch key {
	case KeyAPIURL:
		return settings.API.BaseURL, nil
	case KeyAPITimeout:
		return settings.API.Timeout.String(), nil
	case KeyAPIRateLimit:
		return strconv.FormatFloat(settings.API.RateLimit, 'g', -1, 64), nil
	case KeyBulkConcurrency:
		return strconv.Itoa(settings.Curator.BulkConcurrency), nil
	case KeyClearSelectionOnFilter:
		return strconv.FormatBool(settings.Curator.ClearSelectionOnFilter), nil
	case KeySessionBackend:
		return string(settings.Session), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}
