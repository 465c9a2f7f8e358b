package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "raiz://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Configured RSS sources",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "articles/{articleId}",
		Name:        "article",
		Description: "Plain-text body of an article",
		MIMEType:    "text/plain",
	}, s.handleArticleResource)
}

// handleSourcesResource returns the configured sources.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sources == nil {
		return textResult(req.Params.URI, "application/json", "[]"), nil
	}

	sources, err := s.ports.Sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}
	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleArticleResource returns one article as plain text.
func (s *Server) handleArticleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractArticleID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	article, err := s.ports.Articles.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting article %d: %w", id, err)
	}

	var b strings.Builder
	b.WriteString(article.Title)
	b.WriteString("\n")
	if article.URL != "" {
		b.WriteString(article.URL)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.ports.Articles.PlainText(article.DisplayBody()))

	return textResult(req.Params.URI, "text/plain", b.String()), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractArticleID parses the id from a URI like raiz://articles/{articleId}.
func extractArticleID(uri string) (int64, bool) {
	const prefix = uriScheme + "articles/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
