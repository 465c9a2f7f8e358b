package mcp

import (
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Articles serves search, listing and suggestions.
	Articles driving.ArticleService

	// Sources lists feed sources. Optional.
	Sources driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Articles == nil {
		return ErrMissingArticleService
	}
	return nil
}
