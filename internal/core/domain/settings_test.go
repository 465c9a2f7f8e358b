package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultAPIURL, s.API.BaseURL)
	assert.Equal(t, 30*time.Second, s.API.Timeout)
	assert.Equal(t, 1, s.Curator.BulkConcurrency)
	assert.Equal(t, SessionBackendFile, s.Session)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"relative url", func(s *AppSettings) { s.API.BaseURL = "/api" }},
		{"empty url", func(s *AppSettings) { s.API.BaseURL = "" }},
		{"negative timeout", func(s *AppSettings) { s.API.Timeout = -time.Second }},
		{"negative rate", func(s *AppSettings) { s.API.RateLimit = -1 }},
		{"zero concurrency", func(s *AppSettings) { s.Curator.BulkConcurrency = 0 }},
		{"unknown backend", func(s *AppSettings) { s.Session = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestSource_Validate(t *testing.T) {
	ok := Source{Name: "El Diario", URL: "https://eldiario.example", FeedURL: "https://eldiario.example/rss"}
	assert.NoError(t, ok.Validate())

	missing := Source{Name: "El Diario", URL: "https://eldiario.example"}
	assert.ErrorIs(t, missing.Validate(), ErrInvalidInput)
}

func TestSuggestionQuery_IsEmpty(t *testing.T) {
	assert.True(t, SuggestionQuery{}.IsEmpty())
	assert.True(t, SuggestionQuery{Tags: " , "}.IsEmpty())
	assert.False(t, SuggestionQuery{Tags: "clima"}.IsEmpty())
	assert.False(t, SuggestionQuery{Query: "lluvia"}.IsEmpty())
}
