// Package service implements the session gateway: exchanging identity
// assertions for session tokens and verifying them on later requests.
package service

import (
	"context"
	"errors"
	"time"

	identitysvc "alumni-network/backend/internal/identity/service"
)

// ErrUnauthenticated is returned when an id token or session token is invalid.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the verified subject of a session.
type Principal struct {
	UID   string
	Email string
}

// CredentialIssuer is the part of the credential issuer the gateway needs.
type CredentialIssuer interface {
	MintSessionToken(ctx context.Context, idToken string) (token string, expiresAt time.Time, err error)
	VerifySessionToken(ctx context.Context, token string) (*identitysvc.Identity, error)
	SessionTTL() time.Duration
}

// Gateway mints and verifies session tokens. It never stores sessions; a
// token is valid until it expires or the signing keys rotate.
type Gateway struct {
	issuer CredentialIssuer
}

// NewGateway constructs a session gateway over the credential issuer.
func NewGateway(issuer CredentialIssuer) *Gateway {
	return &Gateway{issuer: issuer}
}

// Mint exchanges a valid id token for a session token. Invalid assertions get
// ErrUnauthenticated; the caller must not learn why.
func (g *Gateway) Mint(ctx context.Context, idToken string) (string, error) {
	token, _, err := g.issuer.MintSessionToken(ctx, idToken)
	if err != nil {
		return "", ErrUnauthenticated
	}
	return token, nil
}

// Verify validates a session token and returns its principal, or
// ErrUnauthenticated for any invalid token.
func (g *Gateway) Verify(ctx context.Context, token string) (*Principal, error) {
	identity, err := g.issuer.VerifySessionToken(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return &Principal{UID: identity.UID, Email: identity.Email}, nil
}

// CookieMaxAge returns the session cookie lifetime in whole seconds.
func (g *Gateway) CookieMaxAge() int {
	return int(g.issuer.SessionTTL() / time.Second)
}
