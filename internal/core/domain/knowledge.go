package domain

import "time"

// KnowledgeItem is a tag-indexed snippet surfaced as editorial suggestion.
type KnowledgeItem struct {
	ID              int64      `json:"id,omitempty"`
	Content         string     `json:"content"`
	Tags            string     `json:"tags"`
	SourceArticleID *int64     `json:"source_article_id,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// TagList splits the comma-separated tags.
func (k *KnowledgeItem) TagList() []string {
	return SplitTags(k.Tags)
}

// SuggestionQuery selects knowledge-base suggestions.
// Either field may be empty.
type SuggestionQuery struct {
	Tags  string
	Query string
}

// IsEmpty reports whether the query would match nothing.
func (q SuggestionQuery) IsEmpty() bool {
	return len(SplitTags(q.Tags)) == 0 && q.Query == ""
}
