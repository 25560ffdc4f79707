package auth

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Service bundles the identity-resolution pipeline behind the operations
// the HTTP layer needs. It is a plain value constructed once at startup from
// injected collaborators; there is no package-level state.
type Service struct {
	credentials *CredentialService
	resolver    *IdentityResolver
	enricher    *TokenEnricher
	hydrator    *SessionHydrator
}

type serviceSettings struct {
	logger             *slog.Logger
	emails             ProviderEmailClient
	bcryptCost         int
	emailLookupTimeout time.Duration
	failOpenLinking    bool
}

// Option configures a Service.
type Option func(*serviceSettings)

// WithLogger sets the logger shared by all pipeline components.
func WithLogger(logger *slog.Logger) Option {
	return func(s *serviceSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEmailClient wires the provider email-API client used by the identity
// resolver's GitHub fallback step.
func WithEmailClient(c ProviderEmailClient) Option {
	return func(s *serviceSettings) {
		s.emails = c
	}
}

// WithBcryptCost sets the bcrypt cost for credential password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *serviceSettings) {
		s.bcryptCost = cost
	}
}

// WithProviderEmailLookupTimeout bounds the provider email-API call made by
// the identity resolver.
func WithProviderEmailLookupTimeout(d time.Duration) Option {
	return func(s *serviceSettings) {
		if d > 0 {
			s.emailLookupTimeout = d
		}
	}
}

// WithFailOpenLinking makes the availability trade-off explicit: when true
// (the default) an OAuth sign-in still succeeds if the store is unreachable,
// carrying a transient unlinked principal; when false, linking failures fail
// the sign-in with ErrAccountLinkFailed.
func WithFailOpenLinking(failOpen bool) Option {
	return func(s *serviceSettings) {
		s.failOpenLinking = failOpen
	}
}

// New wires the full pipeline over the given store.
func New(store UserStore, opts ...Option) *Service {
	settings := &serviceSettings{
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		bcryptCost:         0, // bcrypt default applied by CredentialService
		emailLookupTimeout: 5 * time.Second,
		failOpenLinking:    true,
	}
	for _, opt := range opts {
		opt(settings)
	}

	credOpts := []CredentialOption{WithCredentialLogger(settings.logger)}
	if settings.bcryptCost > 0 {
		credOpts = append(credOpts, WithCredentialBcryptCost(settings.bcryptCost))
	}

	linker := NewAccountLinker(store, WithLinkerLogger(settings.logger))

	return &Service{
		credentials: NewCredentialService(store, credOpts...),
		resolver: NewIdentityResolver(settings.emails,
			WithResolverLogger(settings.logger),
			WithEmailLookupTimeout(settings.emailLookupTimeout),
		),
		enricher: NewTokenEnricher(linker,
			WithEnricherLogger(settings.logger),
			WithEnricherFailOpen(settings.failOpenLinking),
		),
		hydrator: NewSessionHydrator(store, WithHydratorLogger(settings.logger)),
	}
}

// Register creates a credential account. Store failures surface to the
// caller; registration has no fail-open path.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	return s.credentials.Register(ctx, p)
}

// SignInCredentials verifies a credential login and mints the token claims.
func (s *Service) SignInCredentials(ctx context.Context, email, password string) (TokenClaims, error) {
	user, err := s.credentials.Authenticate(ctx, email, password)
	if err != nil {
		return TokenClaims{}, err
	}
	return s.enricher.EnrichCredentials(user), nil
}

// SignInOAuth resolves a provider callback into token claims, linking the
// identity to its canonical record on the way.
func (s *Service) SignInOAuth(ctx context.Context, account OAuthAccount, profile OAuthProfile) (TokenClaims, error) {
	identity := s.resolver.Resolve(ctx, account, profile)
	return s.enricher.EnrichOAuth(ctx, account, identity, profile)
}

// Hydrate rebuilds the session for the claims; see SessionHydrator.
func (s *Service) Hydrate(ctx context.Context, claims TokenClaims) Session {
	return s.hydrator.Hydrate(ctx, claims)
}
