package identity

import "net/http"

// SessionMiddleware parses the session cookie, verifies the token and
// hydrates the session into the request context. Requests without a
// valid token pass through without a session; guarding is left to
// RequireSession so public routes can still observe who is signed in.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cfg.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.tokens.Parse(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session := h.svc.Hydrate(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

// RequireSession rejects requests that carry no valid session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
