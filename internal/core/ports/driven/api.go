package driven

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// ArticleRepository binds the article endpoints.
// The token may be empty for anonymous reads.
type ArticleRepository interface {
	// List returns articles matching the status filter.
	List(ctx context.Context, filter domain.StatusFilter, token string) ([]domain.Article, error)

	// Get fetches a single article.
	Get(ctx context.Context, id int64, token string) (*domain.Article, error)

	// Search runs a full-text/semantic search.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// Update replaces the editable fields of an article.
	Update(ctx context.Context, article domain.Article, token string) (*domain.Article, error)

	// Delete removes an article.
	Delete(ctx context.Context, id int64, token string) error

	// Regenerate rewrites title, content and tags with the generation service.
	Regenerate(ctx context.Context, id int64, token string) (*domain.Article, error)

	// Scrape fetches the original source text into original_content.
	Scrape(ctx context.Context, id int64, token string) (*domain.Article, error)

	// Refine rewrites content according to an instruction.
	Refine(ctx context.Context, id int64, content, instruction, token string) (string, error)

	// Audit produces a critique report of the article.
	Audit(ctx context.Context, id int64, token string) (string, error)
}

// SourceRepository binds the feed source and ingestion endpoints.
type SourceRepository interface {
	List(ctx context.Context) ([]domain.Source, error)
	Create(ctx context.Context, source domain.Source, token string) (*domain.Source, error)
	Delete(ctx context.Context, id int64, token string) error
	Successful(ctx context.Context) ([]domain.Source, error)
	History(ctx context.Context) ([]domain.FeedHistory, error)
	Ingest(ctx context.Context, req domain.IngestRequest, token string) (*domain.IngestResult, error)
}

// AuthRepository binds the login and registration endpoints.
type AuthRepository interface {
	// Login exchanges credentials for an access token.
	// Rejected credentials are reported as domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates a new account with the user role.
	Register(ctx context.Context, reg domain.Registration) error
}

// UserRepository binds the admin user-management endpoints.
type UserRepository interface {
	List(ctx context.Context, token string) ([]domain.Account, error)
	Delete(ctx context.Context, id int64, token string) error
	SetRole(ctx context.Context, id int64, role domain.Role, token string) (*domain.Account, error)
}

// KnowledgeRepository binds the knowledge-base endpoints.
type KnowledgeRepository interface {
	Add(ctx context.Context, item domain.KnowledgeItem, token string) (*domain.KnowledgeItem, error)
	Suggestions(ctx context.Context, q domain.SuggestionQuery, token string) ([]domain.KnowledgeItem, error)
}
