// Package service implements the credential issuer: account registration,
// password sign-in producing short-lived identity assertions (id tokens), and
// session token minting and verification.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"alumni-network/backend/internal/identity/domain"
	"alumni-network/backend/internal/identity/repository"
	"alumni-network/backend/internal/security"
)

var (
	// ErrEmailAlreadyRegistered is returned by Register when an account with the email exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials is returned by SignIn when email or password is wrong,
	// or the account is disabled. Callers must not distinguish which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAssertion is returned by VerifyAssertion for a bad id token.
	ErrInvalidAssertion = errors.New("invalid identity assertion")
	// ErrInvalidSession is returned by VerifySessionToken for a bad session token.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrInvalidEmail is returned by Register for a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword is returned by Register when the password is too short.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// Identity is a verified account identity extracted from a token.
type Identity struct {
	UID   string
	Email string
}

// Issuer is the credential issuer. It owns account records and the signing
// keys for id and session tokens.
type Issuer struct {
	accounts repository.AccountRepository
	hasher   *security.Hasher
	tokens   *security.TokenProvider
}

// NewIssuer constructs an Issuer with its dependencies.
func NewIssuer(accounts repository.AccountRepository, hasher *security.Hasher, tokens *security.TokenProvider) *Issuer {
	return &Issuer{accounts: accounts, hasher: hasher, tokens: tokens}
}

// Register creates a new account and returns it. The email is normalized to
// lower case. Returns ErrInvalidEmail, ErrWeakPassword, or
// ErrEmailAlreadyRegistered on validation failure.
func (s *Issuer) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return account, nil
}

// SignIn verifies email and password and issues a short-lived id token. The
// id token asserts identity only; it is not a session.
func (s *Issuer) SignIn(ctx context.Context, email, password string) (idToken string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil || account.Disabled() {
		return "", ErrInvalidCredentials
	}
	if err := s.hasher.Compare(account.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, _, err := s.tokens.IssueID(account.UID, account.Email)
	return token, err
}

// VerifyAssertion validates an id token and returns the asserted identity.
func (s *Issuer) VerifyAssertion(ctx context.Context, idToken string) (*Identity, error) {
	uid, email, err := s.tokens.ValidateID(idToken)
	if err != nil {
		return nil, ErrInvalidAssertion
	}
	account, err := s.accounts.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Disabled() {
		return nil, ErrInvalidAssertion
	}
	return &Identity{UID: uid, Email: email}, nil
}

// MintSessionToken exchanges a valid id token for a session token bounded to
// the configured session TTL.
func (s *Issuer) MintSessionToken(ctx context.Context, idToken string) (token string, expiresAt time.Time, err error) {
	identity, err := s.VerifyAssertion(ctx, idToken)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.tokens.IssueSession(identity.UID, identity.Email)
}

// VerifySessionToken validates a session token and returns its identity.
func (s *Issuer) VerifySessionToken(ctx context.Context, token string) (*Identity, error) {
	uid, email, err := s.tokens.ValidateSession(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return &Identity{UID: uid, Email: email}, nil
}

// SessionTTL reports the configured session token lifetime.
func (s *Issuer) SessionTTL() time.Duration {
	return s.tokens.SessionTTL()
}
