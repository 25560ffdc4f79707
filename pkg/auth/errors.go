package auth

import "errors"

// Credential errors surfaced to end users.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet security requirements")
	ErrEmailTaken         = errors.New("email already registered")
)

// Store errors. Implementations of UserStore translate their native
// not-found and unique-violation errors into these sentinels.
var (
	ErrUserNotFound = errors.New("user not found")
)

// OAuth errors.
var (
	ErrInvalidCode = errors.New("invalid authorization code")

	// ErrAccountLinkFailed signals that the linker could neither find nor
	// create a canonical record. With fail-open linking enabled the token
	// enricher absorbs it and issues a transient principal instead.
	ErrAccountLinkFailed = errors.New("account linking failed")
)
