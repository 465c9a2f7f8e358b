package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService derives the active identity from a stored bearer token.
type SessionService struct {
	auth    driven.AuthRepository
	tokens  driven.TokenStore
	decoder driven.TokenDecoder

	mu    sync.RWMutex
	token string
	user  *domain.User
}

// NewSessionService creates a session service. The session starts anonymous
// until Restore or Login is called.
func NewSessionService(
	auth driven.AuthRepository,
	tokens driven.TokenStore,
	decoder driven.TokenDecoder,
) *SessionService {
	return &SessionService{
		auth:    auth,
		tokens:  tokens,
		decoder: decoder,
	}
}

// Restore derives the session from the stored token.
func (s *SessionService) Restore(ctx context.Context) error {
	if s.tokens == nil || s.decoder == nil {
		return domain.ErrNotImplemented
	}

	token, err := s.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		s.set("", nil)
		return nil
	}

	user, err := s.decoder.Decode(token)
	if err != nil {
		logger.Warn("discarding stored token: %v", err)
		s.set("", nil)
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clearing token: %w", clearErr)
		}
		return nil
	}

	logger.Debug("session restored for %s (%s)", user.Username, user.Role)
	s.set(token, user)
	return nil
}

// Login exchanges credentials for a token and stores it.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if s.auth == nil || s.tokens == nil || s.decoder == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	user, err := s.decoder.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("decoding issued token: %w", err)
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}

	s.set(token, user)
	logger.Info("logged in as %s (%s)", user.Username, user.Role)
	return user, nil
}

// Logout clears the stored token.
func (s *SessionService) Logout(ctx context.Context) error {
	s.set("", nil)
	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// Register creates an account after checking the confirmation.
// A mismatched confirmation never reaches the server.
func (s *SessionService) Register(ctx context.Context, username, password, confirm string) error {
	if password != confirm {
		return domain.ErrPasswordMismatch
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.ErrInvalidInput
	}
	if s.auth == nil {
		return domain.ErrNotImplemented
	}
	return s.auth.Register(ctx, domain.Registration{
		Username: strings.TrimSpace(username),
		Password: password,
	})
}

// Current returns the active user, or nil when anonymous.
func (s *SessionService) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the active bearer token.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns anonymous or authenticated.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.SessionAnonymous
	}
	return domain.SessionAuthenticated
}

// IsAdmin reports whether admin-only affordances should be shown.
func (s *SessionService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

func (s *SessionService) set(token string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// requireToken returns the session token or ErrAuthRequired.
func requireToken(session driving.SessionService) (string, error) {
	if session == nil {
		return "", domain.ErrAuthRequired
	}
	token := session.Token()
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}

// IsAuthError reports whether err means the user must log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired) ||
		errors.Is(err, domain.ErrAuthInvalid) ||
		errors.Is(err, domain.ErrForbidden)
}
