package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidStatus indicates an article status outside draft/published/archived.
	ErrInvalidStatus = errors.New("invalid article status")

	// ErrInvalidRole indicates a user role outside admin/user.
	ErrInvalidRole = errors.New("invalid role")

	// ErrNoOriginalContent indicates there is no scraped original text to recover.
	ErrNoOriginalContent = errors.New("no original content available")

	// Authentication Errors.

	// ErrAuthRequired indicates the operation needs a logged-in session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the server rejected the bearer token.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrForbidden indicates the session lacks the role for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates the username/password pair was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch indicates the password confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrMalformedToken indicates a stored token could not be decoded.
	ErrMalformedToken = errors.New("malformed token")
)
