// Package service implements member signup and profile management. Signup is
// invitation-gated: the invitation authority decides eligibility and the
// credential issuer creates the login account.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	identitydomain "alumni-network/backend/internal/identity/domain"
	identitysvc "alumni-network/backend/internal/identity/service"
	invitationdomain "alumni-network/backend/internal/invitation/domain"
	invitationsvc "alumni-network/backend/internal/invitation/service"
	"alumni-network/backend/internal/user/domain"
	"alumni-network/backend/internal/user/repository"
)

var (
	// ErrNotEligible means no open invitation covers the signup request.
	ErrNotEligible = errors.New("not eligible to sign up")
	// ErrCodeConflict means the invitation code was redeemed concurrently.
	ErrCodeConflict = errors.New("invitation code already redeemed")
	// ErrEmailTaken means an account with the email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidInput covers malformed signup or profile fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProfileNotFound means no profile exists for the uid.
	ErrProfileNotFound = errors.New("profile not found")
)

// InvitationAuthority is the part of the invitation service signup needs.
type InvitationAuthority interface {
	EligibilityByCode(ctx context.Context, code string) (*invitationdomain.Invitation, error)
	EligibilityByEmail(ctx context.Context, email string) (*invitationdomain.Invitation, error)
	Redeem(ctx context.Context, code string) error
	IsAdminEmail(email string) bool
}

// CredentialRegistrar is the part of the credential issuer signup needs.
type CredentialRegistrar interface {
	Register(ctx context.Context, email, password string) (*identitydomain.Account, error)
	SignIn(ctx context.Context, email, password string) (idToken string, err error)
}

// Service manages member profiles and the signup flow.
type Service struct {
	profiles    repository.ProfileRepository
	invitations InvitationAuthority
	issuer      CredentialRegistrar
}

// NewService constructs the member service.
func NewService(profiles repository.ProfileRepository, invitations InvitationAuthority, issuer CredentialRegistrar) *Service {
	return &Service{profiles: profiles, invitations: invitations, issuer: issuer}
}

// SignupInput is a signup request. Code may be empty when the email itself is
// eligible (open invitation for it, or the admin email).
type SignupInput struct {
	Code      string
	Email     string
	Password  string
	FirstName string
	LastName  string
	ClassYear int
}

// CompleteSignup runs the invitation-gated signup: check eligibility, create
// the account and profile, then redeem the code. Returns an id token the
// client exchanges for a session cookie.
//
// The account is created before the code is redeemed, so a crash between the
// two leaves an open invitation rather than a burned code without an account.
func (s *Service) CompleteSignup(ctx context.Context, input SignupInput) (idToken string, err error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.FirstName == "" || input.LastName == "" {
		return "", ErrInvalidInput
	}

	code := input.Code
	if code != "" {
		inv, err := s.invitations.EligibilityByCode(ctx, code)
		if err != nil {
			return "", mapInvitationErr(err)
		}
		if !strings.EqualFold(inv.Email, email) {
			return "", ErrNotEligible
		}
	} else {
		inv, err := s.invitations.EligibilityByEmail(ctx, email)
		if err != nil {
			return "", mapInvitationErr(err)
		}
		// The admin email is eligible with no invitation to redeem.
		if inv != nil {
			code = inv.Code
		}
	}

	account, err := s.issuer.Register(ctx, email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, identitysvc.ErrEmailAlreadyRegistered):
			return "", ErrEmailTaken
		case errors.Is(err, identitysvc.ErrInvalidEmail), errors.Is(err, identitysvc.ErrWeakPassword):
			return "", ErrInvalidInput
		}
		return "", err
	}

	role := domain.RoleMember
	if s.invitations.IsAdminEmail(email) {
		role = domain.RoleAdmin
	}
	now := time.Now().UTC()
	profile := &domain.Profile{
		UID:                account.UID,
		FirstName:          strings.TrimSpace(input.FirstName),
		LastName:           strings.TrimSpace(input.LastName),
		Email:              email,
		ClassYear:          input.ClassYear,
		CompanyIDs:         []string{},
		TeamRoles:          []string{},
		Role:               role,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return "", err
	}

	if code != "" {
		if err := s.invitations.Redeem(ctx, code); err != nil {
			return "", mapInvitationErr(err)
		}
	}

	return s.issuer.SignIn(ctx, email, input.Password)
}

func mapInvitationErr(err error) error {
	switch {
	case errors.Is(err, invitationsvc.ErrNotEligible):
		return ErrNotEligible
	case errors.Is(err, invitationsvc.ErrCodeConflict):
		return ErrCodeConflict
	default:
		return err
	}
}

// Get returns the profile for uid, or ErrProfileNotFound.
func (s *Service) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// UpdateInput carries the editable profile fields.
type UpdateInput struct {
	FirstName          string
	LastName           string
	ClassYear          int
	Bio                string
	PhoneNumber        string
	ProfilePictureURL  string
	CompanyIDs         []string
	TeamRoles          []string
	EmailNotifications bool
}

// Update replaces the editable fields of the caller's profile. Email and role
// are not editable here.
func (s *Service) Update(ctx context.Context, uid string, input UpdateInput) (*domain.Profile, error) {
	profile, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrInvalidInput
	}

	profile.FirstName = strings.TrimSpace(input.FirstName)
	profile.LastName = strings.TrimSpace(input.LastName)
	profile.ClassYear = input.ClassYear
	profile.Bio = input.Bio
	profile.PhoneNumber = input.PhoneNumber
	profile.ProfilePictureURL = input.ProfilePictureURL
	profile.CompanyIDs = input.CompanyIDs
	profile.TeamRoles = input.TeamRoles
	profile.EmailNotifications = input.EmailNotifications
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// List returns all member profiles for the directory.
func (s *Service) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

// RoleByUID returns the member's role, or "" when no profile exists.
// Satisfies rbac.RoleGetter.
func (s *Service) RoleByUID(ctx context.Context, uid string) (string, error) {
	profile, err := s.profiles.GetByUID(ctx, uid)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", nil
	}
	return profile.Role, nil
}

// SubscriberEmails returns emails of members who opted in to notifications,
// excluding excludeUID.
func (s *Service) SubscriberEmails(ctx context.Context, excludeUID string) ([]string, error) {
	return s.profiles.ListSubscriberEmails(ctx, excludeUID)
}
