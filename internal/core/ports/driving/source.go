package driving

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// SourceService manages feed sources and ingestion.
type SourceService interface {
	// List returns all registered sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Add registers a source. When check is true the feed is probed first.
	Add(ctx context.Context, source domain.Source, check bool) (*domain.Source, error)

	// Remove deletes a source.
	Remove(ctx context.Context, id int64) error

	// Successful returns sources with at least one successful ingestion.
	Successful(ctx context.Context) ([]domain.Source, error)

	// History returns the most recent successful ingestion runs.
	History(ctx context.Context) ([]domain.FeedHistory, error)

	// Ingest pulls a feed now.
	Ingest(ctx context.Context, feedURL, sourceName string) (*domain.IngestResult, error)

	// Probe fetches a feed without registering it.
	Probe(ctx context.Context, feedURL string) (*domain.FeedPreview, error)
}
