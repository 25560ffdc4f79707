package auth

import "context"

// ProviderAdapter encapsulates the provider-specific half of the OAuth
// flow: building the authorization URL and exchanging the callback code for
// the account facts and raw profile. The token exchange itself is delegated
// to golang.org/x/oauth2; this package only consumes its result.
type ProviderAdapter interface {
	// Provider returns the provider identifier (ProviderGoogle, ProviderGithub).
	Provider() string

	// AuthURL builds the authorization URL carrying the CSRF state token.
	AuthURL(state string) string

	// Exchange trades the authorization code for the account and profile.
	// A rejected code maps to ErrInvalidCode.
	Exchange(ctx context.Context, code string) (OAuthAccount, OAuthProfile, error)
}
