package identity

import (
	"github.com/go-chi/chi/v5"
)

// Router mounts the identity endpoints.
//
// Example:
//
//	h := identity.NewHandler(cfg, svc, tokens, states, adapters)
//
//	r := chi.NewRouter()
//	r.Mount("/auth", identity.Router(h))
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Get("/oauth/{provider}", h.oauthBegin)
	r.Get("/oauth/{provider}/callback", h.oauthCallback)

	r.Group(func(r chi.Router) {
		r.Use(h.SessionMiddleware)
		r.Use(RequireSession)
		r.Get("/me", h.me)
	})

	return r
}
