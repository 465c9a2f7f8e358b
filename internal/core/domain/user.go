package domain

import (
	"fmt"
	"strings"
)

// Role is the authorization level of a user.
type Role string

// Roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts a string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// IsValid returns true if the role is admin or user.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// User is the identity of the active session, decoded from the token.
type User struct {
	Username string
	Role     Role
}

// IsAdmin reports whether the user may see admin-only surfaces.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Account is a user record as listed by the admin endpoint.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Registration is the payload for creating an account.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionState is the authentication state of the client.
type SessionState int

// Session states. The only transitions are anonymous -> authenticated on
// login and authenticated -> anonymous on logout or decode failure.
const (
	SessionAnonymous SessionState = iota
	SessionAuthenticated
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionChange reports that the persisted session was replaced or
// removed by another process.
type SessionChange struct {
	Path    string
	Removed bool
}
