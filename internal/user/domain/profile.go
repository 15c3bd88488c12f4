// Package domain defines the member profile data model.
package domain

import "time"

// Member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Profile is a member's directory profile. UID matches the identity account.
type Profile struct {
	UID                string
	FirstName          string
	LastName           string
	Email              string
	ClassYear          int
	Bio                string
	PhoneNumber        string
	ProfilePictureURL  string
	CompanyIDs         []string
	TeamRoles          []string
	Role               string
	EmailNotifications bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsAdmin reports whether the member has the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
