package domain

import "time"

// SearchMetadata is the indexed metadata attached to a search hit.
type SearchMetadata struct {
	ID             int64  `json:"id,omitempty"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Source         string `json:"source"`
	PublishedAt    string `json:"published_at"`
	ContentSnippet string `json:"content_snippet"`
}

// SearchResult represents a single search hit.
type SearchResult struct {
	ID             int64          `json:"id"`
	Score          float64        `json:"score"`
	Metadata       SearchMetadata `json:"metadata"`
	ContentSnippet string         `json:"content_snippet"`
}

// Snippet returns the best available text excerpt.
func (r *SearchResult) Snippet() string {
	if r.ContentSnippet != "" {
		return r.ContentSnippet
	}
	return r.Metadata.ContentSnippet
}

// ToArticle projects the hit into a published article so it can be shown
// in the same list as fetched articles.
func (r *SearchResult) ToArticle() Article {
	a := Article{
		ID:      r.ID,
		Title:   r.Metadata.Title,
		URL:     r.Metadata.URL,
		Source:  r.Metadata.Source,
		Summary: r.Snippet(),
		Status:  StatusPublished,
	}
	if t, ok := parseLooseTime(r.Metadata.PublishedAt); ok {
		a.PublishedAt = &t
		a.CreatedAt = t
	}
	return a
}

// SearchResultsToArticles projects a result list.
func SearchResultsToArticles(results []SearchResult) []Article {
	out := make([]Article, len(results))
	for i := range results {
		out[i] = results[i].ToArticle()
	}
	return out
}

var looseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

func parseLooseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
