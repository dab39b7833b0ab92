package core

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is how long an issued session stays valid. Expiry is fixed at
// issuance; there is no refresh path.
const SessionTTL = 7 * 24 * time.Hour

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Username string `json:"un"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited session tokens.
// Tokens are self-contained: nothing is stored server-side per session.
type TokenService struct {
	keys KeySource
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenService(keys KeySource) *TokenService {
	return &TokenService{keys: keys, ttl: SessionTTL, now: time.Now}
}

// Issue signs a fresh token for username with a new random subject id and an
// expiry of now + SessionTTL. A key-load failure is returned as-is; callers
// treat it as fatal for the operation.
func (s *TokenService) Issue(username string) (string, error) {
	key, err := s.keys.Load()
	if err != nil {
		return "", err
	}

	claims := tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify validates the signature and expiry of token and returns its claims.
// Any malformed, tampered, or expired token yields ErrInvalidToken; a
// key-load failure is returned as-is.
func (s *TokenService) Verify(token string) (SessionClaims, error) {
	key, err := s.keys.Load()
	if err != nil {
		return SessionClaims{}, err
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return SessionClaims{}, ErrInvalidToken
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return SessionClaims{
		Subject:   claims.Subject,
		Username:  claims.Username,
		ExpiresAt: expires,
	}, nil
}
