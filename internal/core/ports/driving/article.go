package driving

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// ArticleService exposes article browsing and curation.
type ArticleService interface {
	// List returns articles for a status filter. Anonymous sessions
	// only ever see published articles.
	List(ctx context.Context, filter domain.StatusFilter) ([]domain.Article, error)

	// Get fetches a single article.
	Get(ctx context.Context, id int64) (*domain.Article, error)

	// Search runs a server-side search.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// Update saves an edited article.
	Update(ctx context.Context, article domain.Article) (*domain.Article, error)

	// Delete removes an article.
	Delete(ctx context.Context, id int64) error

	// SetStatus moves an article to another workflow status.
	SetStatus(ctx context.Context, article domain.Article, status domain.ArticleStatus) (*domain.Article, error)

	// Regenerate rewrites the article with the generation service.
	Regenerate(ctx context.Context, id int64) (*domain.Article, error)

	// Scrape fetches the original source text.
	Scrape(ctx context.Context, id int64) (*domain.Article, error)

	// Refine rewrites content according to an instruction.
	Refine(ctx context.Context, id int64, content, instruction string) (string, error)

	// Audit returns a critique report.
	Audit(ctx context.Context, id int64) (string, error)

	// AddToKnowledgeBase stores a snippet linked to an article.
	AddToKnowledgeBase(ctx context.Context, articleID int64, content, tags string) (*domain.KnowledgeItem, error)

	// Suggestions returns knowledge-base snippets for tags or a query.
	Suggestions(ctx context.Context, q domain.SuggestionQuery) ([]domain.KnowledgeItem, error)

	// RefinePresets returns the quick refine instructions.
	RefinePresets() []string

	// AuditInstruction builds the refine instruction for an audit report.
	AuditInstruction(report string) string

	// PlainText renders an article body for terminal display.
	PlainText(body string) string
}
