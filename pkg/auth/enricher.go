package auth

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brightpath/authkit/pkg/logger"
)

// TokenClaims is the claim set carried by the signed session token. It is
// decided exactly once, at the moment the token is first issued, and never
// re-derived mid-session. The signing itself belongs to the session layer.
type TokenClaims struct {
	UserID   string `json:"uid"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// TokenEnricher attaches the canonical persisted id to the session token
// claims at login time.
type TokenEnricher struct {
	linker   *AccountLinker
	failOpen bool
	logger   *slog.Logger
}

// EnricherOption configures a TokenEnricher.
type EnricherOption func(*TokenEnricher)

// WithEnricherLogger sets a custom logger for the enricher.
func WithEnricherLogger(logger *slog.Logger) EnricherOption {
	return func(e *TokenEnricher) {
		e.logger = logger
	}
}

// WithEnricherFailOpen controls whether a linking failure still produces a
// usable token. See WithFailOpenLinking on the service for the policy.
func WithEnricherFailOpen(failOpen bool) EnricherOption {
	return func(e *TokenEnricher) {
		e.failOpen = failOpen
	}
}

// NewTokenEnricher creates an enricher around the given linker.
func NewTokenEnricher(linker *AccountLinker, opts ...EnricherOption) *TokenEnricher {
	e := &TokenEnricher{
		linker:   linker,
		failOpen: true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnrichCredentials builds claims for a credential login. The verifier
// already holds the canonical record, so no extra lookup happens.
func (e *TokenEnricher) EnrichCredentials(user *User) TokenClaims {
	return TokenClaims{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Picture:  user.Image,
		Provider: ProviderCredentials,
	}
}

// EnrichOAuth links the resolved identity and builds claims around the
// canonical id. Under the fail-open policy a linking failure downgrades to a
// transient principal instead of blocking sign-in: the claims keep the
// identity facts from the callback and carry a throwaway id that no store
// lookup will ever resolve.
func (e *TokenEnricher) EnrichOAuth(ctx context.Context, account OAuthAccount, identity ResolvedIdentity, profile OAuthProfile) (TokenClaims, error) {
	claims := TokenClaims{
		Name:     identity.Name,
		Email:    identity.Email,
		Picture:  profile.Picture,
		Provider: account.Provider,
	}

	user, err := e.linker.Link(ctx, LinkParams{
		Email:             identity.Email,
		Name:              identity.Name,
		Image:             profile.Picture,
		Provider:          account.Provider,
		ProviderAccountID: account.ProviderAccountID,
	})
	if err != nil {
		if !e.failOpen {
			return TokenClaims{}, err
		}
		claims.UserID = uuid.NewString()
		e.logger.WarnContext(ctx, "account linking failed, issuing transient principal",
			logger.Provider(account.Provider),
			slog.String("provider_account_id", account.ProviderAccountID),
			logger.Error(err),
		)
		return claims, nil
	}

	claims.UserID = user.ID
	claims.Name = user.Name
	claims.Email = user.Email
	if user.Image != "" {
		claims.Picture = user.Image
	}
	return claims, nil
}
