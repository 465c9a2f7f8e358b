package api

import (
	"context"
	"net/http"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure SourceRepository implements the interface.
var _ driven.SourceRepository = (*SourceRepository)(nil)

// SourceRepository implements source and ingestion endpoints.
type SourceRepository struct {
	c *Client
}

// List returns all sources.
func (r *SourceRepository) List(ctx context.Context) ([]domain.Source, error) {
	return r.sources(ctx, "/sources")
}

// Create registers a source.
func (r *SourceRepository) Create(ctx context.Context, source domain.Source, token string) (*domain.Source, error) {
	in := struct {
		Name    string `json:"name"`
		URL     string `json:"url"`
		FeedURL string `json:"feed_url"`
		Type    string `json:"type"`
	}{source.Name, source.URL, source.FeedURL, source.Type}

	var out domain.Source
	if err := r.c.do(ctx, http.MethodPost, "/sources", nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a source.
func (r *SourceRepository) Delete(ctx context.Context, id int64, token string) error {
	return r.c.do(ctx, http.MethodDelete, idPath("/sources", id), nil, token, nil, nil)
}

// Successful returns sources with at least one successful fetch.
func (r *SourceRepository) Successful(ctx context.Context) ([]domain.Source, error) {
	return r.sources(ctx, "/sources/successful")
}

// History returns recent successful fetches, newest first.
func (r *SourceRepository) History(ctx context.Context) ([]domain.FeedHistory, error) {
	var dtos []historyDTO
	if err := r.c.do(ctx, http.MethodGet, "/history/successful", nil, "", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.FeedHistory, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain())
	}
	return out, nil
}

// Ingest asks the server to pull a feed now.
func (r *SourceRepository) Ingest(
	ctx context.Context, req domain.IngestRequest, token string,
) (*domain.IngestResult, error) {
	var out domain.IngestResult
	if err := r.c.do(ctx, http.MethodPost, "/ingest", nil, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SourceRepository) sources(ctx context.Context, path string) ([]domain.Source, error) {
	var out []domain.Source
	if err := r.c.do(ctx, http.MethodGet, path, nil, "", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Source{}
	}
	return out, nil
}
