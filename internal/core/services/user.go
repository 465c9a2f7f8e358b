package services

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService administers accounts. The server enforces the admin role.
type UserService struct {
	users   driven.UserRepository
	session driving.SessionService
}

// NewUserService creates a new user service.
func NewUserService(users driven.UserRepository, session driving.SessionService) *UserService {
	return &UserService{users: users, session: session}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.Account, error) {
	if s.users == nil {
		return nil, domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.users.List(ctx, token)
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if s.users == nil {
		return domain.ErrNotImplemented
	}
	token, err := requireToken(s.session)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, id, token)
}

// SetRole changes an account's role.
func (s *UserService) SetRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error) {
	if s.users == nil {
		return nil, domain.ErrNotImplemented
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	token, err := requireToken(s.session)
	if err != nil {
		return nil, err
	}
	return s.users.SetRole(ctx, id, role, token)
}
