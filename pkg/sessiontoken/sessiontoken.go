// Package sessiontoken issues and verifies the signed JWT that carries a
// session's identity claims between requests. Tokens are HMAC-signed
// (HS256); the payload embeds auth.TokenClaims under the "user" key so
// hydration can rebuild a session without trusting anything beyond the
// signature.
package sessiontoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightpath/authkit/pkg/auth"
)

var (
	// ErrMissingSigningKey is returned by New when no signing key is provided.
	ErrMissingSigningKey = errors.New("missing session token signing key")
	// ErrInvalidToken is returned by Parse for any token that fails verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims is the JWT payload. Identity claims live under "user" so the
// registered claims stay at the top level where middleware expects them.
type Claims struct {
	User auth.TokenClaims `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// New creates a token service. The key must be non-empty; ttl bounds how
// long an issued token validates.
func New(signingKey, issuer string, ttl time.Duration) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}, nil
}

// Issue signs a token carrying the given identity claims.
func (s *Service) Issue(user auth.TokenClaims) (string, error) {
	now := time.Now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Parse verifies the token signature, method, issuer and expiry, and
// returns the embedded identity claims.
func (s *Service) Parse(token string) (auth.TokenClaims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return auth.TokenClaims{}, errors.Join(ErrInvalidToken, err)
	}
	return claims.User, nil
}
