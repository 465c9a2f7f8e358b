package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// wireTime decodes the server's timestamps, which may lack a zone.
// Zoneless values are taken as UTC.
type wireTime struct {
	time.Time
}

var wireLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range wireLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t wireTime) ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

type articleDTO struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	URL             string    `json:"url"`
	Source          string    `json:"source"`
	PublishedAt     *wireTime `json:"published_at"`
	Summary         *string   `json:"summary"`
	OriginalContent *string   `json:"original_content"`
	Tags            *string   `json:"tags"`
	Status          string    `json:"status"`
	CreatedAt       wireTime  `json:"created_at"`
}

func (d *articleDTO) toDomain() domain.Article {
	a := domain.Article{
		ID:              d.ID,
		Title:           d.Title,
		Content:         d.Content,
		URL:             d.URL,
		Source:          d.Source,
		Summary:         deref(d.Summary),
		OriginalContent: deref(d.OriginalContent),
		Tags:            deref(d.Tags),
		Status:          domain.ArticleStatus(d.Status),
		CreatedAt:       d.CreatedAt.Time,
	}
	if d.PublishedAt != nil {
		a.PublishedAt = d.PublishedAt.ptr()
	}
	return a
}

func articlesToDomain(dtos []articleDTO) []domain.Article {
	out := make([]domain.Article, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain())
	}
	return out
}

// articleUpdate is the PUT /articles/{id} body.
type articleUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Tags    string `json:"tags"`
	Status  string `json:"status"`
}

type historyDTO struct {
	ID            int64    `json:"id"`
	SourceName    string   `json:"source_name"`
	Status        string   `json:"status"`
	ArticlesCount int      `json:"articles_count"`
	FetchedAt     wireTime `json:"fetched_at"`
	Details       *string  `json:"details"`
}

func (d *historyDTO) toDomain() domain.FeedHistory {
	return domain.FeedHistory{
		ID:            d.ID,
		SourceName:    d.SourceName,
		Status:        d.Status,
		ArticlesCount: d.ArticlesCount,
		FetchedAt:     d.FetchedAt.Time,
		Details:       d.Details,
	}
}

type knowledgeDTO struct {
	ID              int64     `json:"id"`
	Content         string    `json:"content"`
	Tags            *string   `json:"tags"`
	SourceArticleID *int64    `json:"source_article_id"`
	CreatedAt       *wireTime `json:"created_at"`
}

func (d *knowledgeDTO) toDomain() domain.KnowledgeItem {
	k := domain.KnowledgeItem{
		ID:              d.ID,
		Content:         d.Content,
		Tags:            deref(d.Tags),
		SourceArticleID: d.SourceArticleID,
	}
	if d.CreatedAt != nil {
		k.CreatedAt = d.CreatedAt.ptr()
	}
	return k
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
