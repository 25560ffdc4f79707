package auth

import "time"

// Provider identifiers for the sign-in methods the platform supports.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
	ProviderGithub      = "github"
)

// User is the canonical persisted record representing one person,
// deduplicated across sign-in methods. Email is globally unique;
// (Provider, ProviderAccountID) identifies at most one user when both
// are set. Only the account linker mutates existing records.
type User struct {
	ID                string
	Name              string
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      []byte `json:"-"`
	Image             string
	Provider          string
	ProviderAccountID string
	EmailVerifiedAt   *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OAuthAccount carries the provider-side account facts handed back by an
// OAuth callback. It is consumed once per sign-in and never persisted as-is.
type OAuthAccount struct {
	Provider          string
	ProviderAccountID string
	AccessToken       string
}

// OAuthProfile is the normalized provider profile payload. Every field is
// optional; the identity resolver decides what to do when they are empty.
type OAuthProfile struct {
	Email    string
	Name     string
	Login    string
	Username string
	Picture  string

	// Nested holds the secondary payload some providers return with the
	// address one level down from the top-level profile fields.
	Nested *NestedProfile
}

// NestedProfile is the provider-specific inner profile object.
type NestedProfile struct {
	Email string
}

// ProviderEmail is one entry of a provider's authenticated email listing.
type ProviderEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// Session is the per-request view of the authenticated user exposed to the
// rest of the application. Its absence means "unauthenticated".
type Session struct {
	User SessionUser `json:"user"`
}

// SessionUser mirrors the fields downstream features are allowed to read.
type SessionUser struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Image     string `json:"image,omitempty"`
	Provider  string `json:"provider,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
