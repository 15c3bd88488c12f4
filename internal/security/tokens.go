package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or otherwise invalid.
var ErrInvalidToken = errors.New("invalid token")

// Token use values, carried in the token_use claim so an identity assertion can
// never be replayed as a session token or vice versa.
const (
	tokenUseID      = "id"
	tokenUseSession = "session"
)

// Claims holds JWT claims shared by id and session tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	TokenUse string `json:"token_use"`
}

// TokenProvider issues and validates id tokens (identity assertions) and session
// tokens using RS256 or ES256 (private/public key).
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	issuer     string
	audience   string
	idTTL      time.Duration
	sessionTTL time.Duration
}

// NewTokenProvider returns a TokenProvider that signs with the given private key (RS256 or ES256).
// issuer and audience are set on claims and validated on verify.
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, idTTL, sessionTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		audience:   audience,
		idTTL:      idTTL,
		sessionTTL: sessionTTL,
	}
}

// SessionTTL returns the configured session token lifetime.
func (p *TokenProvider) SessionTTL() time.Duration {
	return p.sessionTTL
}

// IssueID issues a short-lived id token (identity assertion) for the given account.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueID(uid, email string) (token string, expiresAt time.Time, err error) {
	return p.issue(uid, email, tokenUseID, p.idTTL)
}

// IssueSession issues a session token for the given account, bounded to the session TTL.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueSession(uid, email string) (token string, expiresAt time.Time, err error) {
	return p.issue(uid, email, tokenUseSession, p.sessionTTL)
}

func (p *TokenProvider) issue(uid, email, use string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:    email,
		TokenUse: use,
	}
	token, err := p.sign(claims)
	return token, expiresAt, err
}

func (p *TokenProvider) sign(claims jwt.Claims) (string, error) {
	var method jwt.SigningMethod
	switch p.privateKey.Public().(type) {
	case *rsa.PublicKey:
		method = jwt.SigningMethodRS256
	case *ecdsa.PublicKey:
		method = jwt.SigningMethodES256
	default:
		return "", ErrInvalidToken
	}
	t := jwt.NewWithClaims(method, claims)
	return t.SignedString(p.privateKey)
}

// ValidateID parses and validates an id token (signature, exp, iss, aud, token_use).
// Returns the account uid and email, or ErrInvalidToken.
func (p *TokenProvider) ValidateID(tokenString string) (uid, email string, err error) {
	return p.validate(tokenString, tokenUseID)
}

// ValidateSession parses and validates a session token (signature, exp, iss, aud, token_use).
// Returns the account uid and email, or ErrInvalidToken.
func (p *TokenProvider) ValidateSession(tokenString string) (uid, email string, err error) {
	return p.validate(tokenString, tokenUseSession)
}

func (p *TokenProvider) validate(tokenString, use string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			return p.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); ok {
			return p.publicKey, nil
		}
		return nil, ErrInvalidToken
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return "", "", ErrInvalidToken
	}
	audOk := false
	for _, a := range claims.Audience {
		if a == p.audience {
			audOk = true
			break
		}
	}
	if !audOk {
		return "", "", ErrInvalidToken
	}
	if claims.TokenUse != use {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Email, nil
}
