package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/brightpath/authkit/pkg/logger"
)

// SessionHydrator rebuilds the externally visible session from the current
// user record on every authenticated request. It deliberately re-queries the
// store each time instead of caching, trading latency for freshness of
// profile data.
type SessionHydrator struct {
	store  UserStore
	logger *slog.Logger
}

// HydratorOption configures a SessionHydrator.
type HydratorOption func(*SessionHydrator)

// WithHydratorLogger sets a custom logger for the hydrator.
func WithHydratorLogger(logger *slog.Logger) HydratorOption {
	return func(h *SessionHydrator) {
		h.logger = logger
	}
}

// NewSessionHydrator creates a hydrator over the given store.
func NewSessionHydrator(store UserStore, opts ...HydratorOption) *SessionHydrator {
	h := &SessionHydrator{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hydrate resolves the token claims into a session. A malformed id skips the
// store entirely, and a missing or unreadable record degrades to the minimal
// claims-derived session; hydration itself never fails a request.
func (h *SessionHydrator) Hydrate(ctx context.Context, claims TokenClaims) Session {
	minimal := Session{User: SessionUser{
		ID:       claims.UserID,
		Name:     claims.Name,
		Email:    claims.Email,
		Image:    claims.Picture,
		Provider: claims.Provider,
	}}

	if !h.store.ValidID(claims.UserID) {
		return minimal
	}

	user, err := h.store.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			h.logger.WarnContext(ctx, "session hydration query failed",
				logger.UserID(claims.UserID),
				logger.Error(err),
			)
		}
		return minimal
	}

	return Session{User: SessionUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		Provider:  user.Provider,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}}
}
