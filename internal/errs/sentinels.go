// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers. Each boundary maps into
// this closed set explicitly; nothing outside the set crosses a layer.
var (
	// ErrInvalidCredentials indicates a failed password check (or a stored
	// hash the verifier refuses). Deliberately indistinct.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound indicates no account exists for the given email.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTokenExpired indicates a well-formed, correctly signed token past
	// its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidToken indicates any other token verification failure
	// (bad signature, malformed structure, wrong secret).
	ErrInvalidToken = errors.New("invalid token")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the acting user is not a member of the
	// server that owns the target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrBackingStore wraps any collaborator failure (database, bus).
	ErrBackingStore = errors.New("backing store failure")
)
