// Package domain defines the core business entities for raiz.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A news article moving through the draft/published/archived workflow
//   - Source: A registered RSS feed used by ingestion
//   - KnowledgeItem: A tagged snippet curators attach as reference context
//   - User: The session identity decoded from a bearer token
//   - SearchResult: A hit returned by the search endpoint
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
