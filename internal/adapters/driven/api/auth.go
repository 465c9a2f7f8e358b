package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure AuthRepository implements the interface.
var _ driven.AuthRepository = (*AuthRepository)(nil)

// AuthRepository implements login and registration.
type AuthRepository struct {
	c *Client
}

// Login performs an OAuth2 password grant against /token and returns
// the access token.
func (r *AuthRepository) Login(ctx context.Context, username, password string) (string, error) {
	if err := r.c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	cfg := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  r.c.baseURL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.c.http)

	tok, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			switch retrieveErr.Response.StatusCode {
			case http.StatusUnauthorized, http.StatusBadRequest:
				return "", domain.ErrInvalidCredentials
			}
			return "", &APIError{
				Method:     http.MethodPost,
				Path:       "/token",
				StatusCode: retrieveErr.Response.StatusCode,
				Detail:     parseDetail(retrieveErr.Body),
			}
		}
		return "", fmt.Errorf("login: %w", err)
	}
	return tok.AccessToken, nil
}

// Register creates an account with the user role.
func (r *AuthRepository) Register(ctx context.Context, reg domain.Registration) error {
	return r.c.do(ctx, http.MethodPost, "/register", nil, "", reg, nil)
}
