// Package domain defines the invitation data model.
package domain

import "time"

// Invitation is a single-use signup invitation keyed by an unguessable code.
// Multiple open invitations may exist for the same email; each is redeemable
// independently.
type Invitation struct {
	Code   string
	Email  string
	SentAt time.Time
	SentBy string
	UsedAt *time.Time
}

// Used reports whether the invitation has been redeemed.
func (i *Invitation) Used() bool {
	return i.UsedAt != nil
}
