package driving

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// SessionService owns the authentication state of the client.
type SessionService interface {
	// Restore derives the session from the stored token.
	// A missing token leaves the session anonymous; an undecodable one
	// is cleared and the session becomes anonymous.
	Restore(ctx context.Context) error

	// Login exchanges credentials for a token and stores it.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Logout clears the stored token.
	Logout(ctx context.Context) error

	// Register creates an account after checking the confirmation.
	Register(ctx context.Context, username, password, confirm string) error

	// Current returns the active user, or nil when anonymous.
	Current() *domain.User

	// Token returns the active bearer token, or "".
	Token() string

	// State returns anonymous or authenticated.
	State() domain.SessionState

	// IsAdmin reports whether admin-only affordances should be shown.
	IsAdmin() bool
}
