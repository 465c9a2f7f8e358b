package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure KnowledgeRepository implements the interface.
var _ driven.KnowledgeRepository = (*KnowledgeRepository)(nil)

// KnowledgeRepository implements knowledge-base endpoints.
type KnowledgeRepository struct {
	c *Client
}

// Add stores a knowledge snippet.
func (r *KnowledgeRepository) Add(
	ctx context.Context, item domain.KnowledgeItem, token string,
) (*domain.KnowledgeItem, error) {
	in := struct {
		Content         string `json:"content"`
		Tags            string `json:"tags"`
		SourceArticleID *int64 `json:"source_article_id,omitempty"`
	}{item.Content, item.Tags, item.SourceArticleID}

	var dto knowledgeDTO
	if err := r.c.do(ctx, http.MethodPost, "/knowledge-base", nil, token, in, &dto); err != nil {
		return nil, err
	}
	out := dto.toDomain()
	return &out, nil
}

// Suggestions returns snippets sharing a tag or containing the query.
func (r *KnowledgeRepository) Suggestions(
	ctx context.Context, q domain.SuggestionQuery, token string,
) ([]domain.KnowledgeItem, error) {
	params := url.Values{}
	if q.Tags != "" {
		params.Set("tags", q.Tags)
	}
	if q.Query != "" {
		params.Set("query", q.Query)
	}

	var dtos []knowledgeDTO
	if err := r.c.do(ctx, http.MethodGet, "/knowledge-base/suggestions", params, token, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.KnowledgeItem, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain())
	}
	return out, nil
}
