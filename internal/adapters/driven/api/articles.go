package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure ArticleRepository implements the interface.
var _ driven.ArticleRepository = (*ArticleRepository)(nil)

// ArticleRepository implements article endpoints.
type ArticleRepository struct {
	c *Client
}

// List returns articles with the given status.
func (r *ArticleRepository) List(
	ctx context.Context, filter domain.StatusFilter, token string,
) ([]domain.Article, error) {
	var dtos []articleDTO
	q := url.Values{"status": {filter.String()}}
	if err := r.c.do(ctx, http.MethodGet, "/articles", q, token, nil, &dtos); err != nil {
		return nil, err
	}
	return articlesToDomain(dtos), nil
}

// Get fetches a single article.
func (r *ArticleRepository) Get(ctx context.Context, id int64, token string) (*domain.Article, error) {
	return r.article(ctx, http.MethodGet, idPath("/articles", id), token, nil)
}

// Search runs a similarity search. It needs no token.
func (r *ArticleRepository) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var results []domain.SearchResult
	q := url.Values{"query": {query}}
	if err := r.c.do(ctx, http.MethodGet, "/search", q, "", nil, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	return results, nil
}

// Update saves title, content, summary, tags and status.
func (r *ArticleRepository) Update(
	ctx context.Context, article domain.Article, token string,
) (*domain.Article, error) {
	body := articleUpdate{
		Title:   article.Title,
		Content: article.Content,
		Summary: article.Summary,
		Tags:    article.Tags,
		Status:  article.Status.String(),
	}
	return r.article(ctx, http.MethodPut, idPath("/articles", article.ID), token, body)
}

// Delete removes an article.
func (r *ArticleRepository) Delete(ctx context.Context, id int64, token string) error {
	return r.c.do(ctx, http.MethodDelete, idPath("/articles", id), nil, token, nil, nil)
}

// Regenerate rewrites the article server-side.
func (r *ArticleRepository) Regenerate(ctx context.Context, id int64, token string) (*domain.Article, error) {
	return r.article(ctx, http.MethodPost, idPath("/articles", id, "regenerate"), token, nil)
}

// Scrape fetches the source page text into original_content.
func (r *ArticleRepository) Scrape(ctx context.Context, id int64, token string) (*domain.Article, error) {
	return r.article(ctx, http.MethodPost, idPath("/articles", id, "scrape"), token, nil)
}

// Refine returns content rewritten according to instruction. Nothing is
// persisted until the article is saved.
func (r *ArticleRepository) Refine(
	ctx context.Context, id int64, content, instruction, token string,
) (string, error) {
	in := struct {
		Content     string `json:"content"`
		Instruction string `json:"instruction"`
	}{content, instruction}
	var out struct {
		RefinedContent string `json:"refined_content"`
	}
	if err := r.c.do(ctx, http.MethodPost, idPath("/articles", id, "refine"), nil, token, in, &out); err != nil {
		return "", err
	}
	return out.RefinedContent, nil
}

// Audit returns a critique comparing content with the original text.
func (r *ArticleRepository) Audit(ctx context.Context, id int64, token string) (string, error) {
	var out struct {
		AuditReport string `json:"audit_report"`
	}
	if err := r.c.do(ctx, http.MethodPost, idPath("/articles", id, "audit"), nil, token, nil, &out); err != nil {
		return "", err
	}
	return out.AuditReport, nil
}

func (r *ArticleRepository) article(
	ctx context.Context, method, path, token string, in any,
) (*domain.Article, error) {
	var dto articleDTO
	if err := r.c.do(ctx, method, path, nil, token, in, &dto); err != nil {
		return nil, err
	}
	if dto.ID == 0 {
		return nil, fmt.Errorf("%s %s: empty article in response", method, path)
	}
	a := dto.toDomain()
	return &a, nil
}
