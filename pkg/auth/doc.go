// Package auth implements the identity-resolution and session-binding
// pipeline: the code that turns a credential login or an OAuth provider
// callback into a single canonical user record and a hydrated session.
//
// The pipeline is built from small collaborating services, each constructed
// once at startup from injected interfaces:
//
//   - CredentialService verifies and registers password accounts (bcrypt).
//   - IdentityResolver normalizes OAuth profiles into a usable email and
//     display name, with provider-specific fallbacks ending in a synthesized
//     placeholder address that is never treated as real mail.
//   - AccountLinker maps a resolved identity to exactly one persisted user,
//     reconciling provider/name/image drift in place and recovering from
//     concurrent-create races by a single re-read.
//   - TokenEnricher decides the claims that go into the signed session token,
//     exactly once at login.
//   - SessionHydrator rebuilds the externally visible session from the
//     current record on every request, degrading to the token's own claims
//     when the id is malformed or the record is gone.
//   - SanitizeRedirect keeps post-login redirects same-origin.
//
// Service bundles the pipeline behind the operations HTTP handlers need.
// Persistence sits behind the UserStore interface; implementations live in
// pkg/authstore.
//
// # Failure policy
//
// Only invalid credentials and store failures during registration surface to
// the end user. Everything else degrades: a failing provider email lookup
// falls through to the placeholder, a duplicate-create race is resolved by
// re-reading, and - when fail-open linking is enabled (the default) - even an
// unreachable store does not block an OAuth sign-in; the token is issued with
// a transient id that hydrates to a minimal session. Disable this trade of
// consistency for availability with WithFailOpenLinking(false).
//
// # Usage
//
//	store, _ := mongodb.New(ctx, db)
//	svc := auth.New(store,
//		auth.WithEmailClient(auth.NewGitHubEmailClient()),
//		auth.WithLogger(log),
//	)
//
//	claims, err := svc.SignInCredentials(ctx, email, password)
//	// err is auth.ErrInvalidCredentials on a bad email or password.
//
//	claims, err = svc.SignInOAuth(ctx, account, profile)
//	// never fails under the default fail-open policy.
//
//	session := svc.Hydrate(ctx, claims) // per request
package auth
