package user

import (
	"strings"
	"time"
)

const (
	DefaultEmail = "unknown@example.com"
	DefaultName  = "Unnamed User"
)

// Profile is the locally persisted user record, keyed by the identity
// provider's user id.
type Profile struct {
	ID         string
	ExternalID string
	Email      string
	Name       string
	ImageURL   string
	Industry   string
	Experience int
	Bio        string
	Skills     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Onboarded reports whether the profile has an industry assigned.
func (p Profile) Onboarded() bool {
	return strings.TrimSpace(p.Industry) != ""
}

// ExternalIdentity is the subset of identity provider data copied into a new profile.
type ExternalIdentity struct {
	ExternalID string
	Email      string
	Name       string
	ImageURL   string
}

// WithDefaults fills missing fields with the placeholder values used for new profiles.
func (i ExternalIdentity) WithDefaults() ExternalIdentity {
	if strings.TrimSpace(i.Email) == "" {
		i.Email = DefaultEmail
	}
	if strings.TrimSpace(i.Name) == "" {
		i.Name = DefaultName
	}
	return i
}

type OnboardingUpdate struct {
	Industry   string
	Experience int
	Bio        string
	Skills     []string
}

// Session is the authenticated caller as seen by request handling.
type Session struct {
	ExternalID string
	SessionID  string
}

func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.ExternalID) != ""
}
