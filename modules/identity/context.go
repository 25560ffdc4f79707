package identity

import (
	"context"

	"github.com/brightpath/authkit/pkg/auth"
)

type contextKey struct{ name string }

var sessionContextKey = contextKey{"session"}

// withSession stores the hydrated session in the request context.
func withSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext retrieves the session placed by the session
// middleware. The second return value reports whether one is present.
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(auth.Session)
	return s, ok
}
