// Package domain defines the identity data model.
package domain

import "time"

// Account is a credentialed login identity. Profile data lives separately in
// the user package; an Account only carries what the credential issuer needs.
type Account struct {
	UID          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	DisabledAt   *time.Time
}

// Disabled reports whether the account has been disabled and must not sign in.
func (a *Account) Disabled() bool {
	return a.DisabledAt != nil
}
