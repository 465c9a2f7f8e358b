package api

import (
	"context"
	"net/http"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure UserRepository implements the interface.
var _ driven.UserRepository = (*UserRepository)(nil)

// UserRepository implements the admin user endpoints.
type UserRepository struct {
	c *Client
}

// List returns all accounts.
func (r *UserRepository) List(ctx context.Context, token string) ([]domain.Account, error) {
	var out []domain.Account
	if err := r.c.do(ctx, http.MethodGet, "/users", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an account.
func (r *UserRepository) Delete(ctx context.Context, id int64, token string) error {
	return r.c.do(ctx, http.MethodDelete, idPath("/users", id), nil, token, nil, nil)
}

// SetRole changes an account's role.
func (r *UserRepository) SetRole(
	ctx context.Context, id int64, role domain.Role, token string,
) (*domain.Account, error) {
	in := struct {
		Role string `json:"role"`
	}{role.String()}
	var out domain.Account
	if err := r.c.do(ctx, http.MethodPut, idPath("/users", id, "role"), nil, token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
