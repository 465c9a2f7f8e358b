package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

const defaultLimit = 10

// SearchInput is the input schema for the search_articles tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_articles tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search hit.
type SearchResultOutput struct {
	ArticleID   int64   `json:"article_id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Source      string  `json:"source,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
	Score       float64 `json:"score"`
	Snippet     string  `json:"snippet,omitempty"`
}

// ListInput is the input schema for the list_articles tool.
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of articles to return (default 10)"`
}

// ListOutput is the output schema for the list_articles tool.
type ListOutput struct {
	Articles []ArticleOutput `json:"articles"`
	Count    int             `json:"count"`
}

// ArticleOutput is a published article summary.
type ArticleOutput struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source,omitempty"`
	Date    string `json:"date"`
	Summary string `json:"summary,omitempty"`
	Tags    string `json:"tags,omitempty"`
}

// SuggestionsInput is the input schema for the kb_suggestions tool.
type SuggestionsInput struct {
	Tags  string `json:"tags,omitempty" jsonschema:"comma-separated tags to match"`
	Query string `json:"query,omitempty" jsonschema:"free text to match"`
}

// SuggestionsOutput is the output schema for the kb_suggestions tool.
type SuggestionsOutput struct {
	Items []domain.KnowledgeItem `json:"items"`
	Count int                    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_articles",
		Description: "Search the Raíz news archive",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_articles",
		Description: "List the most recent published articles",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "kb_suggestions",
		Description: "Suggest knowledge-base snippets by tags or text",
	}, s.handleSuggestions)
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	return n
}

// handleSearch handles the search_articles tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Articles.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	if limit := limitOrDefault(input.Limit); len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		r := &results[i]
		output.Results[i] = SearchResultOutput{
			ArticleID:   r.ID,
			Title:       r.Metadata.Title,
			URL:         r.Metadata.URL,
			Source:      r.Metadata.Source,
			PublishedAt: r.Metadata.PublishedAt,
			Score:       r.Score,
			Snippet:     r.Snippet(),
		}
	}

	return nil, output, nil
}

// handleList handles the list_articles tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	articles, err := s.ports.Articles.List(ctx, domain.FilterFor(domain.StatusPublished))
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing articles: %w", err)
	}

	if limit := limitOrDefault(input.Limit); len(articles) > limit {
		articles = articles[:limit]
	}

	output := ListOutput{
		Articles: make([]ArticleOutput, len(articles)),
		Count:    len(articles),
	}
	for i := range articles {
		a := &articles[i]
		output.Articles[i] = ArticleOutput{
			ID:      a.ID,
			Title:   a.Title,
			URL:     a.URL,
			Source:  a.Source,
			Date:    a.EffectiveDate().Format("2006-01-02"),
			Summary: s.ports.Articles.PlainText(a.Summary),
			Tags:    a.Tags,
		}
	}

	return nil, output, nil
}

// handleSuggestions handles the kb_suggestions tool invocation.
func (s *Server) handleSuggestions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestionsInput,
) (*mcp.CallToolResult, SuggestionsOutput, error) {
	items, err := s.ports.Articles.Suggestions(ctx, domain.SuggestionQuery{Tags: input.Tags, Query: input.Query})
	if err != nil {
		return nil, SuggestionsOutput{}, err
	}
	if items == nil {
		items = []domain.KnowledgeItem{}
	}
	return nil, SuggestionsOutput{Items: items, Count: len(items)}, nil
}
