package core

import "errors"

var (
	// ErrValidation is returned when submitted credentials are empty or contain whitespace.
	ErrValidation = errors.New("username and password cannot be empty or contain spaces")
	// ErrPasswordMismatch is returned when password and confirmation differ at registration.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrUnauthorized is returned for any failed login. The wording is deliberately
	// the same for an unknown username and a wrong password.
	ErrUnauthorized = errors.New("invalid login")
	// ErrConflict is returned when registration is attempted after an account exists.
	ErrConflict = errors.New("account already registered")

	// ErrCredentialNotFound is returned when no account has been registered yet.
	ErrCredentialNotFound = errors.New("no credential registered")
	// ErrCredentialExists is returned by Create when a credential record is already persisted.
	ErrCredentialExists = errors.New("credential already exists")

	// ErrMalformedHash is returned when a stored password hash cannot be parsed.
	ErrMalformedHash = errors.New("malformed password hash")
	// ErrInvalidToken covers bad signatures, expired tokens, and garbage input alike.
	ErrInvalidToken = errors.New("invalid session token")
)
