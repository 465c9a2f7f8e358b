package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages news sources and ingestion.
type SourceService struct {
	sources driven.SourceRepository
	session driving.SessionService
	probe   driven.FeedProbe
}

// NewSourceService creates a new source service. probe is optional.
func NewSourceService(
	sources driven.SourceRepository,
	session driving.SessionService,
	probe driven.FeedProbe,
) *SourceService {
	return &SourceService{
		sources: sources,
		session: session,
		probe:   probe,
	}
}

// List returns all registered sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	if s.sources == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sources.List(ctx)
}

// Add registers a source, optionally probing its feed first.
func (s *SourceService) Add(ctx context.Context, source domain.Source, check bool) (*domain.Source, error) {
	if s.sources == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if source.Type == "" {
		source.Type = domain.DefaultSourceType
	}

	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}

	if check {
		preview, err := s.Probe(ctx, source.FeedURL)
		if err != nil {
			return nil, fmt.Errorf("checking feed: %w", err)
		}
		logger.Info("feed %q looks valid: %d items", preview.Title, preview.ItemCount)
	}

	return s.sources.Create(ctx, source, token)
}

// Remove deletes a source.
func (s *SourceService) Remove(ctx context.Context, id int64) error {
	if s.sources == nil {
		return domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	return s.sources.Delete(ctx, id, token)
}

// Successful returns sources with at least one successful ingestion.
func (s *SourceService) Successful(ctx context.Context) ([]domain.Source, error) {
	if s.sources == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sources.Successful(ctx)
}

// History returns the most recent successful ingestion runs.
func (s *SourceService) History(ctx context.Context) ([]domain.FeedHistory, error) {
	if s.sources == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.sources.History(ctx)
}

// Ingest pulls a feed now.
func (s *SourceService) Ingest(ctx context.Context, feedURL, sourceName string) (*domain.IngestResult, error) {
	if s.sources == nil {
		return nil, domain.ErrNotImplemented
	}
	feedURL = strings.TrimSpace(feedURL)
	sourceName = strings.TrimSpace(sourceName)
	if feedURL == "" || sourceName == "" {
		return nil, fmt.Errorf("%w: feed url and source name are required", domain.ErrInvalidInput)
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.sources.Ingest(ctx, domain.IngestRequest{FeedURL: feedURL, SourceName: sourceName}, token)
}

// Probe fetches a feed without registering it.
func (s *SourceService) Probe(ctx context.Context, feedURL string) (*domain.FeedPreview, error) {
	if s.probe == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(feedURL) == "" {
		return nil, fmt.Errorf("%w: feed url is required", domain.ErrInvalidInput)
	}
	return s.probe.Probe(ctx, feedURL)
}
