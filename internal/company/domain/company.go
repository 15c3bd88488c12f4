// Package domain defines the company data model.
package domain

// Company is an employer members can tag on their profile.
type Company struct {
	ID      string
	Name    string
	LogoURL string
}
