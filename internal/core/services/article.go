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

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// ArticleService implements article browsing and curation.
type ArticleService struct {
	articles  driven.ArticleRepository
	knowledge driven.KnowledgeRepository
	session   driving.SessionService
	prompts   driven.PromptStore
	renderer  driven.TextRenderer
}

// NewArticleService creates a new article service.
// prompts and renderer are optional.
func NewArticleService(
	articles driven.ArticleRepository,
	knowledge driven.KnowledgeRepository,
	session driving.SessionService,
	prompts driven.PromptStore,
	renderer driven.TextRenderer,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		knowledge: knowledge,
		session:   session,
		prompts:   prompts,
		renderer:  renderer,
	}
}

// List returns articles for a status filter.
func (s *ArticleService) List(ctx context.Context, filter domain.StatusFilter) ([]domain.Article, error) {
	if s.articles == nil {
		return nil, domain.ErrNotImplemented
	}
	if !filter.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	token := ""
	if s.session != nil {
		token = s.session.Token()
	}
	if token == "" && filter != domain.FilterFor(domain.StatusPublished) {
		logger.Debug("anonymous list: forcing filter %q to published", filter)
		filter = domain.FilterFor(domain.StatusPublished)
	}

	articles, err := s.articles.List(ctx, filter, token)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// Get fetches a single article.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	if s.articles == nil {
		return nil, domain.ErrNotImplemented
	}
	token := ""
	if s.session != nil {
		token = s.session.Token()
	}
	return s.articles.Get(ctx, id, token)
}

// Search runs a server-side search. A blank query returns nothing.
func (s *ArticleService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if s.articles == nil {
		return nil, domain.ErrNotImplemented
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	results, err := s.articles.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return results, nil
}

// Update saves an edited article.
func (s *ArticleService) Update(ctx context.Context, article domain.Article) (*domain.Article, error) {
	if s.articles == nil {
		return nil, domain.ErrNotImplemented
	}
	if !article.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.articles.Update(ctx, article, token)
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if s.articles == nil {
		return domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	return s.articles.Delete(ctx, id, token)
}

// SetStatus moves an article to another workflow status.
func (s *ArticleService) SetStatus(
	ctx context.Context, article domain.Article, status domain.ArticleStatus,
) (*domain.Article, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	article.Status = status
	return s.Update(ctx, article)
}

// Regenerate rewrites the article with the generation service.
func (s *ArticleService) Regenerate(ctx context.Context, id int64) (*domain.Article, error) {
	if s.articles == nil {
		return nil, domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.articles.Regenerate(ctx, id, token)
}

// Scrape fetches the original source text.
func (s *ArticleService) Scrape(ctx context.Context, id int64) (*domain.Article, error) {
	if s.articles == nil {
		return nil, domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.articles.Scrape(ctx, id, token)
}

// Refine rewrites content according to an instruction.
func (s *ArticleService) Refine(ctx context.Context, id int64, content, instruction string) (string, error) {
	if s.articles == nil {
		return "", domain.ErrNotImplemented
	}
	if strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("%w: empty instruction", domain.ErrInvalidInput)
	}
	token, err := requireToken(s.session)
	if err != nil {
		return "", err
	}
	return s.articles.Refine(ctx, id, content, instruction, token)
}

// Audit returns a critique report.
func (s *ArticleService) Audit(ctx context.Context, id int64) (string, error) {
	if s.articles == nil {
		return "", domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return "", err
	}
	return s.articles.Audit(ctx, id, token)
}

// AddToKnowledgeBase stores a snippet linked to an article.
func (s *ArticleService) AddToKnowledgeBase(
	ctx context.Context, articleID int64, content, tags string,
) (*domain.KnowledgeItem, error) {
	if s.knowledge == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: empty content", domain.ErrInvalidInput)
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	id := articleID
	return s.knowledge.Add(ctx, domain.KnowledgeItem{
		Content:         content,
		Tags:            domain.JoinTags(domain.SplitTags(tags)),
		SourceArticleID: &id,
	}, token)
}

// Suggestions returns knowledge-base snippets for tags or a query.
// An empty query returns no suggestions without calling the server.
func (s *ArticleService) Suggestions(
	ctx context.Context, q domain.SuggestionQuery,
) ([]domain.KnowledgeItem, error) {
	if s.knowledge == nil {
		return nil, domain.ErrNotImplemented
	}
	if q.IsEmpty() {
		return []domain.KnowledgeItem{}, nil
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.knowledge.Suggestions(ctx, q, token)
}

// RefinePresets returns the quick refine instructions, one per line of
// the presets prompt. Falls back to the built-in presets.
func (s *ArticleService) RefinePresets() []string {
	if s.prompts != nil {
		raw, err := s.prompts.Load(driven.PromptRefinePresets)
		if err == nil {
			var presets []string
			for _, line := range strings.Split(raw, "\n") {
				if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
					presets = append(presets, line)
				}
			}
			if len(presets) > 0 {
				return presets
			}
		} else {
			logger.Debug("refine presets: %v", err)
		}
	}
	out := make([]string, len(domain.DefaultRefinePresets))
	copy(out, domain.DefaultRefinePresets)
	return out
}

// AuditInstruction builds the refine instruction for an audit report.
func (s *ArticleService) AuditInstruction(report string) string {
	tmpl := domain.DefaultAuditFixTemplate
	if s.prompts != nil {
		if raw, err := s.prompts.Load(driven.PromptAuditFix); err == nil && strings.Contains(raw, "%s") {
			tmpl = strings.TrimRight(raw, "\n")
		}
	}
	return fmt.Sprintf(tmpl, report)
}

// PlainText renders an article body for terminal display.
func (s *ArticleService) PlainText(body string) string {
	if s.renderer == nil {
		return body
	}
	return s.renderer.PlainText(body)
}
