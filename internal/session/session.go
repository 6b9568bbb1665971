// Package session reads and stores the bearer token issued at login and
// exposes the claims decoded from it. The session is created and
// invalidated by the backend; this package only observes it.
package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvToken is an environment variable override for the session token,
// useful for scripting and tests. The keyring is consulted only when it
// is unset.
const EnvToken = "SHOPDESK_TOKEN"

// ErrNoSession indicates no usable session token is present. Callers
// must fail fast without issuing network calls.
var ErrNoSession = errors.New("authentication required")

// Claims are the fields decoded from the session token's payload.
type Claims struct {
	UserID      string   `json:"userId"`
	OrgID       string   `json:"orgId"`
	Permissions []string `json:"permissions"`
	Role        string   `json:"role"`

	jwt.RegisteredClaims
}

// Session is the current authenticated context. It is read-only: the
// token is issued and revoked by the backend.
type Session struct {
	Token  string
	Claims Claims
}

// Provider supplies the current session, or nil when none is present.
// The zero value of Store is the default provider.
type Provider interface {
	Current() *Session
}

// Store loads and persists the session token. It satisfies Provider.
type Store struct{}

// Current returns the current session, or nil when no valid token is
// available. An expired token is treated the same as an absent one.
func (Store) Current() *Session {
	s, err := Load()
	if err != nil {
		return nil
	}
	return s
}

// Load reads the session token from the environment or the system
// keyring and decodes its claims. Returns ErrNoSession when no token is
// present or the token has expired.
func Load() (*Session, error) {
	token := os.Getenv(EnvToken)
	if token == "" {
		stored, err := readToken()
		if err != nil || stored == "" {
			return nil, ErrNoSession
		}
		token = stored
	}

	return Parse(token)
}

// Parse decodes the claims from a bearer token. The signature is not
// verified: the client holds no signing key, and every permission the
// claims grant is independently enforced by the server. Returns
// ErrNoSession for expired tokens.
func Parse(token string) (*Session, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decoding session token: %w", err)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrNoSession
	}

	return &Session{Token: token, Claims: claims}, nil
}

// Save stores a session token in the system keyring.
func Save(token string) error {
	if _, err := Parse(token); err != nil {
		return err
	}
	return writeToken(token)
}

// Clear removes the stored session token.
func Clear() error {
	return deleteToken()
}
