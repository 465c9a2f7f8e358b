package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// Editor holds the editable state of one article. Side actions go through
// the article service; a failed action leaves the state untouched.
type Editor struct {
	svc     driving.ArticleService
	article domain.Article

	title           string
	content         string
	tags            string
	status          domain.ArticleStatus
	originalContent string
	auditReport     string
}

// NewEditor creates an editor for article.
func NewEditor(svc driving.ArticleService, article domain.Article) *Editor {
	e := &Editor{svc: svc}
	e.Reset(article)
	return e
}

// Reset loads article into the editor, discarding local edits.
func (e *Editor) Reset(article domain.Article) {
	e.article = article
	e.title = article.Title
	e.content = article.DisplayBody()
	e.tags = article.Tags
	e.status = article.Status
	e.originalContent = article.OriginalContent
	e.auditReport = ""
}

// Clone returns an independent copy, so a front end can run a side
// action off its render loop and swap the result in.
func (e *Editor) Clone() *Editor {
	c := *e
	return &c
}

// Article returns the article as last loaded or saved.
func (e *Editor) Article() domain.Article { return e.article }

func (e *Editor) Title() string                { return e.title }
func (e *Editor) Content() string              { return e.content }
func (e *Editor) Tags() string                 { return e.tags }
func (e *Editor) Status() domain.ArticleStatus { return e.status }
func (e *Editor) OriginalContent() string      { return e.originalContent }
func (e *Editor) AuditReport() string          { return e.auditReport }

func (e *Editor) SetTitle(title string)     { e.title = title }
func (e *Editor) SetContent(content string) { e.content = content }
func (e *Editor) SetTags(tags string)       { e.tags = tags }

// SetStatus changes the workflow status.
func (e *Editor) SetStatus(status domain.ArticleStatus) error {
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}
	e.status = status
	return nil
}

// Dirty reports whether local fields differ from the loaded article.
func (e *Editor) Dirty() bool {
	return e.title != e.article.Title ||
		e.content != e.article.DisplayBody() ||
		e.tags != e.article.Tags ||
		e.status != e.article.Status
}

// Preview returns the article as it would be saved.
func (e *Editor) Preview() domain.Article {
	a := e.article
	a.Title = e.title
	a.Content = e.content
	a.Summary = domain.Summarize(e.content)
	a.Tags = e.tags
	a.Status = e.status
	a.OriginalContent = e.originalContent
	return a
}

// Save persists the preview article and reloads the editor from the
// server's copy.
func (e *Editor) Save(ctx context.Context) (*domain.Article, error) {
	saved, err := e.svc.Update(ctx, e.Preview())
	if err != nil {
		return nil, err
	}
	if saved != nil {
		e.Reset(*saved)
	}
	return saved, nil
}

// Regenerate replaces title, content and tags with a generated rewrite.
func (e *Editor) Regenerate(ctx context.Context) error {
	a, err := e.svc.Regenerate(ctx, e.article.ID)
	if err != nil {
		return err
	}
	e.title = a.Title
	e.content = a.DisplayBody()
	e.tags = a.Tags
	return nil
}

// Refine replaces the content with a rewrite following instruction.
func (e *Editor) Refine(ctx context.Context, instruction string) error {
	refined, err := e.svc.Refine(ctx, e.article.ID, e.content, instruction)
	if err != nil {
		return err
	}
	e.content = refined
	return nil
}

// Scrape refreshes the cached original text.
func (e *Editor) Scrape(ctx context.Context) error {
	a, err := e.svc.Scrape(ctx, e.article.ID)
	if err != nil {
		return err
	}
	e.originalContent = a.OriginalContent
	return nil
}

// Audit requests a critique and keeps the report.
func (e *Editor) Audit(ctx context.Context) (string, error) {
	report, err := e.svc.Audit(ctx, e.article.ID)
	if err != nil {
		return "", err
	}
	e.auditReport = report
	return report, nil
}

// RefineWithAudit fixes the persisted content according to an audit
// report. An empty report uses the last stored one.
func (e *Editor) RefineWithAudit(ctx context.Context, report string) error {
	if strings.TrimSpace(report) == "" {
		report = e.auditReport
	}
	if strings.TrimSpace(report) == "" {
		return domain.ErrInvalidInput
	}
	refined, err := e.svc.Refine(ctx, e.article.ID, e.article.DisplayBody(), e.svc.AuditInstruction(report))
	if err != nil {
		return err
	}
	e.content = refined
	return nil
}

// RecoverOriginal restores the content from the cached original text.
func (e *Editor) RecoverOriginal() error {
	if strings.TrimSpace(e.originalContent) == "" {
		return domain.ErrNoOriginalContent
	}
	e.content = e.originalContent
	return nil
}

// AddToKnowledgeBase stores the current content as a knowledge snippet.
func (e *Editor) AddToKnowledgeBase(ctx context.Context) (*domain.KnowledgeItem, error) {
	return e.svc.AddToKnowledgeBase(ctx, e.article.ID, e.content, e.tags)
}

// Suggestions returns knowledge snippets related to the article's tags.
func (e *Editor) Suggestions(ctx context.Context) ([]domain.KnowledgeItem, error) {
	return e.svc.Suggestions(ctx, domain.SuggestionQuery{Tags: e.article.Tags})
}
