// Package apperr defines the error taxonomy shared by services and handlers.
// Services return one of these sentinels (or a wrapped dependency error);
// handlers map them to HTTP statuses without inspecting error strings.
package apperr

import "errors"

var (
	// ErrDuplicateEmail signals a signup against an already registered email.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidCredentials signals a password mismatch on login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound signals a missing user row.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidToken signals a malformed, tampered or expired session token.
	ErrInvalidToken = errors.New("invalid token")
)
