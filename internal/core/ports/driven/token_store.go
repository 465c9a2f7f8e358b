package driven

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// TokenStore persists the bearer token between runs.
// Implementations are injected so sessions can live on disk, in SQLite
// or only in memory.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)

	// Save stores the token, replacing any previous one.
	Save(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// TokenDecoder derives the session identity from a bearer token.
// Signatures are not verified; the server is the trust boundary.
type TokenDecoder interface {
	// Decode returns the user encoded in the token payload.
	// Undecodable tokens are reported as domain.ErrMalformedToken.
	Decode(token string) (*domain.User, error)
}
