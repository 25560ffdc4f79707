package identity

import (
	"context"
	"time"

	"github.com/brightpath/authkit/pkg/auth"
)

// AuthService is the slice of the authentication pipeline the HTTP
// layer depends on.
type AuthService interface {
	Register(ctx context.Context, p auth.RegisterParams) (*auth.User, error)
	SignInCredentials(ctx context.Context, email, password string) (auth.TokenClaims, error)
	SignInOAuth(ctx context.Context, account auth.OAuthAccount, profile auth.OAuthProfile) (auth.TokenClaims, error)
	Hydrate(ctx context.Context, claims auth.TokenClaims) auth.Session
}

// TokenService signs and verifies session tokens.
type TokenService interface {
	Issue(user auth.TokenClaims) (string, error)
	Parse(token string) (auth.TokenClaims, error)
	TTL() time.Duration
}
