package oauthstate

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// ErrStateNotFound is returned by Consume when the state is unknown,
// already redeemed, or expired.
var ErrStateNotFound = errors.New("oauth state not found or expired")

// Store persists OAuth state tokens for the duration of one
// authorization round trip.
type Store interface {
	// Save records the state with the given time to live.
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume atomically redeems the state. It returns ErrStateNotFound
	// if the state was never saved, expired, or was consumed before.
	Consume(ctx context.Context, state string) error
}

// NewState generates a cryptographically random URL-safe state token.
func NewState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
