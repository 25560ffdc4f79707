package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length for credential
// accounts. HTTP handlers validate it up front; the service enforces it
// regardless of the caller.
const MinPasswordLength = 8

// RegisterParams are the inputs for creating a credential account.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// CredentialService registers and verifies password-based accounts.
type CredentialService struct {
	store      UserStore
	bcryptCost int
	logger     *slog.Logger
}

// NewCredentialService creates a credential service over the given store.
func NewCredentialService(store UserStore, opts ...CredentialOption) *CredentialService {
	s := &CredentialService{
		store:      store,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CredentialOption configures a CredentialService.
type CredentialOption func(*CredentialService)

// WithCredentialLogger sets a custom logger for the service.
func WithCredentialLogger(logger *slog.Logger) CredentialOption {
	return func(s *CredentialService) {
		s.logger = logger
	}
}

// WithCredentialBcryptCost sets the bcrypt cost for password hashing.
func WithCredentialBcryptCost(cost int) CredentialOption {
	return func(s *CredentialService) {
		s.bcryptCost = cost
	}
}

// Register creates a new credential account. Unlike OAuth sign-in there is no
// transient fallback identity to continue with, so store failures here are
// hard failures the caller must surface as "try again later".
func (s *CredentialService) Register(ctx context.Context, p RegisterParams) (*User, error) {
	email := NormalizeEmail(p.Email)

	if len(p.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)

	user, err := s.store.Create(ctx, &User{
		Name:         strings.TrimSpace(first + " " + last),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		Provider:     ProviderCredentials,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies email and password and returns the matching record.
// Every failure collapses into ErrInvalidCredentials to prevent user
// enumeration. No account is ever created or modified here.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// OAuth-created accounts have no hash and can never pass here.
	if len(user.PasswordHash) == 0 {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
