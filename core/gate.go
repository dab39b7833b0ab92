package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Gate orchestrates credential storage, hashing, and token issuance to answer
// the two questions the HTTP layer cares about: "is this request
// authenticated?" and "produce a fresh session for these credentials."
type Gate struct {
	creds     CredentialRepository
	pool      *HashPool
	tokens    *TokenService
	transport *SessionTransport
}

func NewGate(creds CredentialRepository, pool *HashPool, tokens *TokenService, transport *SessionTransport) *Gate {
	return &Gate{creds: creds, pool: pool, tokens: tokens, transport: transport}
}

// Session is the result of a successful registration or login.
type Session struct {
	Token  string
	Cookie *http.Cookie
}

// Registered reports whether an account exists.
func (g *Gate) Registered() bool {
	return g.creds.Exists()
}

// Register creates the single account and authenticates the caller.
// ErrValidation / ErrPasswordMismatch for bad input, ErrConflict when an
// account already exists. The store's exclusive create is authoritative under
// concurrent registrations; the Exists pre-check only short-circuits.
func (g *Gate) Register(ctx context.Context, username, password, confirm string) (Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return Session{}, err
	}
	if password != confirm {
		return Session{}, ErrPasswordMismatch
	}
	if g.creds.Exists() {
		return Session{}, ErrConflict
	}

	hash, err := g.pool.Hash(ctx, password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	if err := g.creds.Create(username, hash); err != nil {
		if errors.Is(err, ErrCredentialExists) {
			return Session{}, ErrConflict
		}
		return Session{}, err
	}

	return g.issueSession(username)
}

// Login verifies credentials against the stored account and authenticates the
// caller. All failure modes short of storage corruption collapse into
// ErrUnauthorized so a caller cannot probe whether a username exists.
func (g *Gate) Login(ctx context.Context, username, password string) (Session, error) {
	if err := validateCredentials(username, password); err != nil {
		return Session{}, err
	}

	cred, err := g.creds.Load()
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}

	if username != cred.Username {
		return Session{}, ErrUnauthorized
	}

	ok, err := g.pool.Verify(ctx, password, cred.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return Session{}, ErrUnauthorized
	}

	return g.issueSession(username)
}

// Check reports whether r carries a valid session. Purely a predicate:
// redirect policy stays with the routing layer.
func (g *Gate) Check(r *http.Request) (SessionClaims, bool) {
	token, ok := g.transport.ExtractToken(r)
	if !ok {
		return SessionClaims{}, false
	}
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return SessionClaims{}, false
	}
	return claims, true
}

// Logout returns the cookie that clears the client's session. The token
// itself stays valid until expiry; the server keeps no session state.
func (g *Gate) Logout() *http.Cookie {
	return g.transport.ClearCookie()
}

func (g *Gate) issueSession(username string) (Session, error) {
	token, err := g.tokens.Issue(username)
	if err != nil {
		return Session{}, err
	}
	cookie, err := g.transport.BuildCookie(token)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Cookie: cookie}, nil
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" ||
		strings.ContainsAny(username, " \t\r\n") || strings.ContainsAny(password, " \t\r\n") {
		return ErrValidation
	}
	return nil
}
