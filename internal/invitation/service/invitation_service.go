// Package service implements the invitation authority: issuing invitations,
// checking signup eligibility, and atomically redeeming codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"alumni-network/backend/internal/invitation/domain"
	"alumni-network/backend/internal/invitation/repository"
	"alumni-network/backend/internal/notification"
)

var (
	// ErrInvalidEmail is returned by Issue for a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrNotEligible is returned when a code is unknown or already used, or no
	// open invitation exists for an email. Callers must not distinguish which.
	ErrNotEligible = errors.New("not eligible")
	// ErrCodeConflict is returned by Redeem when the code was redeemed
	// concurrently by another request.
	ErrCodeConflict = errors.New("invitation code already redeemed")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const emailTimeout = 15 * time.Second

// Service is the invitation authority.
type Service struct {
	invitations repository.InvitationRepository
	sender      notification.Sender
	appURL      string
	adminEmail  string
}

// NewService constructs the invitation authority. adminEmail, when non-empty,
// is always eligible to sign up without an invitation. appURL is the public
// base URL embedded in invitation links.
func NewService(invitations repository.InvitationRepository, sender notification.Sender, appURL, adminEmail string) *Service {
	return &Service{
		invitations: invitations,
		sender:      sender,
		appURL:      strings.TrimRight(appURL, "/"),
		adminEmail:  strings.ToLower(adminEmail),
	}
}

// Issue creates an invitation for email, persists it, and sends the signup
// link by email. sentBy records the issuing admin's uid. Issuing for an email
// that already has open invitations creates another independent one.
// Email delivery happens in the background; a delivery failure does not fail
// the issued invitation.
func (s *Service) Issue(ctx context.Context, email, sentBy string) (*domain.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	inv := &domain.Invitation{
		Code:   uuid.NewString(),
		Email:  email,
		SentAt: time.Now().UTC(),
		SentBy: sentBy,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	go s.sendInviteEmail(inv)
	return inv, nil
}

func (s *Service) sendInviteEmail(inv *domain.Invitation) {
	ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
	defer cancel()

	link := fmt.Sprintf("%s/signup?code=%s", s.appURL, url.QueryEscape(inv.Code))
	msg := notification.Message{
		To:      inv.Email,
		Subject: "You're invited to the alumni network",
		HTML: fmt.Sprintf(
			`<p>You have been invited to join the alumni network.</p><p><a href="%s">Create your account</a></p>`,
			link,
		),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		log.Printf("invitation: send email to %s failed: %v", inv.Email, err)
	}
}

// EligibilityByCode returns the invitation for code if it exists and is
// unused. Unknown and used codes both return ErrNotEligible.
func (s *Service) EligibilityByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	if code == "" {
		return nil, ErrNotEligible
	}
	inv, err := s.invitations.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Used() {
		return nil, ErrNotEligible
	}
	return inv, nil
}

// EligibilityByEmail returns the most recent open invitation for email. The
// configured admin email is always eligible and gets (nil, nil): eligible
// with no invitation to redeem.
func (s *Service) EligibilityByEmail(ctx context.Context, email string) (*domain.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.adminEmail != "" && email == s.adminEmail {
		return nil, nil
	}
	inv, err := s.invitations.LatestOpenByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotEligible
	}
	return inv, nil
}

// Redeem consumes the invitation code. The underlying update is conditional,
// so of two concurrent redeems exactly one succeeds; the loser gets
// ErrCodeConflict. An unknown code gets ErrNotEligible.
func (s *Service) Redeem(ctx context.Context, code string) error {
	err := s.invitations.MarkUsed(ctx, code, time.Now().UTC())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotEligible
	case errors.Is(err, repository.ErrAlreadyUsed):
		return ErrCodeConflict
	default:
		return err
	}
}

// IsAdminEmail reports whether email matches the configured admin email.
func (s *Service) IsAdminEmail(email string) bool {
	return s.adminEmail != "" && strings.ToLower(strings.TrimSpace(email)) == s.adminEmail
}
