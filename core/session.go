package core

import (
	"net/http"
)

// AuthCookieName is the session cookie presented by authenticated clients.
const AuthCookieName = "AuthToken"

// SessionTransport moves session tokens in and out of HTTP cookies with a
// consistent attribute policy: Path=/, HttpOnly, SameSite=Strict, and Secure
// taken from the live config on every build.
type SessionTransport struct {
	config ConfigProvider
}

func NewSessionTransport(config ConfigProvider) *SessionTransport {
	return &SessionTransport{config: config}
}

// BuildCookie wraps token in the auth cookie. The config store is consulted
// per call so a secureCookie edit applies to the next issued cookie without
// a restart.
func (t *SessionTransport) BuildCookie(token string) (*http.Cookie, error) {
	cfg, err := t.config.Current()
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}, nil
}

// ClearCookie returns a cookie that deletes the session on the client.
func (t *SessionTransport) ClearCookie() *http.Cookie {
	secure := false
	if cfg, err := t.config.Current(); err == nil {
		secure = cfg.SecureCookie
	}
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExtractToken reads the auth cookie from r. A missing cookie is not an
// error; it simply means the request is unauthenticated.
func (t *SessionTransport) ExtractToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(AuthCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
