// Package token decodes bearer tokens issued by the API.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure JWTDecoder implements the interface.
var _ driven.TokenDecoder = (*JWTDecoder)(nil)

// claims is the payload the API puts in its access tokens.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTDecoder reads the session identity from a JWT payload without
// verifying its signature. The server re-checks every request.
type JWTDecoder struct {
	parser *jwt.Parser
}

// NewJWTDecoder creates a decoder.
func NewJWTDecoder() *JWTDecoder {
	return &JWTDecoder{parser: jwt.NewParser()}
}

// Decode returns the user encoded in token. A missing or unknown role
// falls back to the user role.
func (d *JWTDecoder) Decode(token string) (*domain.User, error) {
	var c claims
	if _, _, err := d.parser.ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrMalformedToken)
	}

	role, err := domain.ParseRole(c.Role)
	if err != nil {
		role = domain.RoleUser
	}
	return &domain.User{Username: c.Subject, Role: role}, nil
}
