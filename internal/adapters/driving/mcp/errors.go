// Package mcp provides an MCP (Model Context Protocol) server adapter for raiz.
// It exposes read-only article search, listing and knowledge-base
// suggestions to AI assistants.
package mcp

import "errors"

// ErrMissingArticleService is returned when the article service is not provided.
var ErrMissingArticleService = errors.New("mcp: article service is required")
