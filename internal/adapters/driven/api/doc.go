// Package api implements the driven repository ports against the Raíz
// REST API.
//
// A single Client carries the base URL, timeout and an optional
// client-side rate limiter. Every call takes a context and an optional
// bearer token. Non-2xx responses surface as *APIError, which unwraps to
// the matching domain sentinel (401 ErrAuthInvalid, 403 ErrForbidden,
// 404 ErrNotFound).
package api
