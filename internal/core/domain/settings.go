package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults for AppSettings.
const (
	DefaultAPIURL          = "http://localhost:8000"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultBulkConcurrency = 1
)

// SessionBackend selects where the bearer token is persisted.
type SessionBackend string

// Available session backends.
const (
	// SessionBackendFile stores the token in a 0600 file in the config dir.
	SessionBackendFile SessionBackend = "file"

	// SessionBackendSQLite stores the token in the local SQLite database.
	SessionBackendSQLite SessionBackend = "sqlite"

	// SessionBackendMemory keeps the token for the lifetime of the process.
	SessionBackendMemory SessionBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b SessionBackend) IsValid() bool {
	switch b {
	case SessionBackendFile, SessionBackendSQLite, SessionBackendMemory:
		return true
	default:
		return false
	}
}

// APISettings configures the HTTP client.
type APISettings struct {
	// BaseURL is the root of the REST API.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero disables throttling.
	RateLimit float64
}

// CuratorSettings configures curator workflows.
type CuratorSettings struct {
	// BulkConcurrency is the number of bulk requests in flight.
	// One keeps bulk actions strictly sequential.
	BulkConcurrency int

	// ClearSelectionOnFilter drops the bulk selection whenever filters change.
	ClearSelectionOnFilter bool
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	API     APISettings
	Curator CuratorSettings
	Session SessionBackend
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: DefaultAPIURL,
			Timeout: DefaultRequestTimeout,
		},
		Curator: CuratorSettings{
			BulkConcurrency: DefaultBulkConcurrency,
		},
		Session: SessionBackendFile,
	}
}

// Validate checks that settings are usable.
func (s *AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api url %q", ErrInvalidInput, s.API.BaseURL)
	}
	if s.API.Timeout < 0 || s.API.RateLimit < 0 {
		return fmt.Errorf("%w: negative api limits", ErrInvalidInput)
	}
	if s.Curator.BulkConcurrency < 1 {
		return fmt.Errorf("%w: bulk concurrency must be at least 1", ErrInvalidInput)
	}
	if !s.Session.IsValid() {
		return fmt.Errorf("%w: session backend %q", ErrInvalidInput, s.Session)
	}
	return nil
}
