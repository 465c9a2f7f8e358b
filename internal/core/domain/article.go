package domain

import (
	"fmt"
	"strings"
	"time"
)

// SummaryLength is the number of characters kept in a derived summary.
const SummaryLength = 200

// ArticleStatus is the editorial state of an article.
// It is a closed enum: draft, published or archived.
type ArticleStatus string

// Article statuses.
const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// AllStatuses lists the valid statuses in workflow order.
var AllStatuses = []ArticleStatus{StatusDraft, StatusPublished, StatusArchived}

// ParseArticleStatus converts a string into an ArticleStatus.
func ParseArticleStatus(s string) (ArticleStatus, error) {
	status := ArticleStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid returns true if the status is one of the three known values.
func (s ArticleStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ArticleStatus) String() string {
	return string(s)
}

// Label returns the editorial label shown in status tabs.
func (s ArticleStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Borradores"
	case StatusPublished:
		return "Validados"
	case StatusArchived:
		return "Archivados"
	default:
		return unknownLabel
	}
}

const unknownLabel = "Desconocido"

// StatusFilter selects which statuses a list request returns.
// It is an ArticleStatus or the special value "all".
type StatusFilter string

// StatusFilterAll requests every status (curators only).
const StatusFilterAll StatusFilter = "all"

// FilterFor returns the filter matching a single status.
func FilterFor(s ArticleStatus) StatusFilter {
	return StatusFilter(s)
}

// ParseStatusFilter converts a string into a StatusFilter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusFilterAll)) {
		return StatusFilterAll, nil
	}
	status, err := ParseArticleStatus(s)
	if err != nil {
		return "", err
	}
	return FilterFor(status), nil
}

// IsValid returns true if the filter is "all" or a valid status.
func (f StatusFilter) IsValid() bool {
	return f == StatusFilterAll || ArticleStatus(f).IsValid()
}

// String returns the string representation.
func (f StatusFilter) String() string {
	return string(f)
}

// Article is a news article as exposed by the API.
type Article struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Content         string        `json:"content"`
	URL             string        `json:"url"`
	Source          string        `json:"source"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	Summary         string        `json:"summary,omitempty"`
	OriginalContent string        `json:"original_content,omitempty"`
	Tags            string        `json:"tags,omitempty"`
	Status          ArticleStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// TagList splits the comma-separated tags, trimming whitespace and
// dropping empty entries.
func (a *Article) TagList() []string {
	return SplitTags(a.Tags)
}

// EffectiveDate returns the publication date, falling back to the
// creation date when the article has never been published.
func (a *Article) EffectiveDate() time.Time {
	if a.PublishedAt != nil && !a.PublishedAt.IsZero() {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// DisplayBody returns the content, falling back to the summary.
func (a *Article) DisplayBody() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Summary
}

// SplitTags splits a comma-separated tag string.
func SplitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags joins tags back into the comma-separated wire form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Summarize derives a summary from content. Content longer than
// SummaryLength characters is cut and suffixed with an ellipsis.
func Summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= SummaryLength {
		return content
	}
	return string(runes[:SummaryLength]) + "..."
}
