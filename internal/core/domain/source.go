package domain

import (
	"strings"
	"time"
)

// DefaultSourceType is the only source type ingestion understands.
const DefaultSourceType = "rss"

// Source is an RSS feed registration used by ingestion.
type Source struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	FeedURL string `json:"feed_url"`
	Type    string `json:"type,omitempty"`
}

// Validate checks the fields required to register a source.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.URL) == "" ||
		strings.TrimSpace(s.FeedURL) == "" {
		return ErrInvalidInput
	}
	return nil
}

// FeedHistory is one successful ingestion run of a source.
type FeedHistory struct {
	ID            int64     `json:"id"`
	SourceName    string    `json:"source_name"`
	Status        string    `json:"status"`
	ArticlesCount int       `json:"articles_count"`
	FetchedAt     time.Time `json:"fetched_at"`
	Details       *string   `json:"details,omitempty"`
}

// IngestRequest asks the server to pull a feed now.
type IngestRequest struct {
	FeedURL    string `json:"feed_url"`
	SourceName string `json:"source_name"`
}

// IngestResult reports the outcome of an ingestion run.
type IngestResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// FeedPreview summarises a feed probed before registering it.
type FeedPreview struct {
	Title     string
	Link      string
	FeedLink  string
	ItemCount int
}
