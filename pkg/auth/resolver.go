package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/brightpath/authkit/pkg/logger"
)

// ProviderEmailClient lists the email addresses of the authenticated
// provider account. GitHub is the only supported provider that needs this;
// see NewGitHubEmailClient.
type ProviderEmailClient interface {
	ListEmails(ctx context.Context, accessToken string) ([]ProviderEmail, error)
}

// ResolvedIdentity is the outcome of profile normalization: an email that is
// always present (possibly synthesized) and a display name.
type ResolvedIdentity struct {
	Email string
	Name  string

	// Placeholder marks a synthesized never-real-mail address. Accounts
	// created with one are not marked email-verified.
	Placeholder bool
}

// IdentityResolver determines a usable email address and name for an OAuth
// identity, using provider-specific fallback strategies. It never fails: a
// broken or slow provider email API is logged and skipped, and the final
// fallback synthesizes a deterministic placeholder address.
type IdentityResolver struct {
	emails        ProviderEmailClient
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// ResolverOption configures an IdentityResolver.
type ResolverOption func(*IdentityResolver)

// WithResolverLogger sets a custom logger for the resolver.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *IdentityResolver) {
		r.logger = logger
	}
}

// WithEmailLookupTimeout bounds the provider email-API call so a slow
// provider cannot stall sign-in.
func WithEmailLookupTimeout(d time.Duration) ResolverOption {
	return func(r *IdentityResolver) {
		r.lookupTimeout = d
	}
}

// NewIdentityResolver creates a resolver. A nil email client disables the
// provider email-API step of the fallback chain.
func NewIdentityResolver(emails ProviderEmailClient, opts ...ResolverOption) *IdentityResolver {
	r := &IdentityResolver{
		emails:        emails,
		lookupTimeout: 5 * time.Second,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve normalizes an OAuth account and profile into an identity. The
// email fallback order is: top-level profile email, nested profile email,
// the provider's authenticated email listing (GitHub only), then a
// synthesized "<login>@<provider>.local" placeholder.
func (r *IdentityResolver) Resolve(ctx context.Context, account OAuthAccount, profile OAuthProfile) ResolvedIdentity {
	email := strings.TrimSpace(profile.Email)

	if email == "" && profile.Nested != nil {
		email = strings.TrimSpace(profile.Nested.Email)
	}

	if email == "" && account.Provider == ProviderGithub {
		email = r.lookupPrimaryEmail(ctx, account)
	}

	placeholder := false
	if email == "" {
		email = placeholderEmail(account, profile)
		placeholder = true
	} else {
		email = NormalizeEmail(email)
	}

	return ResolvedIdentity{
		Email:       email,
		Name:        resolveName(profile, email),
		Placeholder: placeholder,
	}
}

// lookupPrimaryEmail queries the provider's email listing and selects the
// entry flagged both primary and verified. Any failure is non-fatal.
func (r *IdentityResolver) lookupPrimaryEmail(ctx context.Context, account OAuthAccount) string {
	if r.emails == nil || account.AccessToken == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	emails, err := r.emails.ListEmails(ctx, account.AccessToken)
	if err != nil {
		r.logger.WarnContext(ctx, "provider email lookup failed",
			logger.Provider(account.Provider),
			logger.Error(err),
		)
		return ""
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

// placeholderEmail synthesizes the deterministic fallback address for
// identities whose provider exposes no usable email.
func placeholderEmail(account OAuthAccount, profile OAuthProfile) string {
	username := profile.Login
	if username == "" {
		username = profile.Username
	}
	if username == "" {
		username = "user" + account.ProviderAccountID
	}
	return strings.ToLower(username) + "@" + account.Provider + ".local"
}

// resolveName prefers the profile's display name, then its handle, then the
// local part of the resolved email.
func resolveName(profile OAuthProfile, email string) string {
	if name := strings.TrimSpace(profile.Name); name != "" {
		return name
	}
	if profile.Login != "" {
		return profile.Login
	}
	if profile.Username != "" {
		return profile.Username
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
