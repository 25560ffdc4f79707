package identity

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath/authkit/pkg/auth"
	"github.com/brightpath/authkit/pkg/logger"
	"github.com/brightpath/authkit/pkg/oauthstate"
)

// redirectCookie carries the post-login destination across the OAuth
// round trip. Sanitized on write and again on read.
const redirectCookie = "auth_redirect"

func (h *Handler) oauthBegin(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.adapters[chi.URLParam(r, "provider")]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown provider")
		return
	}

	state, err := oauthstate.NewState()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to generate oauth state", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to start sign-in")
		return
	}
	if err := h.states.Save(r.Context(), state, h.cfg.StateTTL); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save oauth state", logger.Error(err))
		respondError(w, http.StatusServiceUnavailable, "sign-in is temporarily unavailable, try again later")
		return
	}

	if target := r.URL.Query().Get("redirect"); target != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     redirectCookie,
			Value:    auth.SanitizeRedirect(target, h.cfg.BaseURL),
			Path:     "/",
			MaxAge:   int(h.cfg.StateTTL.Seconds()),
			HttpOnly: true,
			Secure:   h.cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, adapter.AuthURL(state), http.StatusFound)
}

func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	adapter, ok := h.adapters[providerName]
	if !ok {
		respondError(w, http.StatusNotFound, "unknown provider")
		return
	}

	query := r.URL.Query()
	if errCode := query.Get("error"); errCode != "" {
		// User denied the consent screen or the provider aborted.
		h.logger.InfoContext(r.Context(), "oauth flow aborted by provider",
			logger.Provider(providerName),
			slog.String("provider_error", errCode),
		)
		respondError(w, http.StatusBadRequest, "authorization was not granted")
		return
	}

	if err := h.states.Consume(r.Context(), query.Get("state")); err != nil {
		if errors.Is(err, oauthstate.ErrStateNotFound) {
			respondError(w, http.StatusBadRequest, "invalid or expired sign-in attempt, start again")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to consume oauth state", logger.Error(err))
		respondError(w, http.StatusServiceUnavailable, "sign-in is temporarily unavailable, try again later")
		return
	}

	account, profile, err := adapter.Exchange(r.Context(), query.Get("code"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCode) {
			respondError(w, http.StatusBadRequest, "invalid authorization code")
			return
		}
		h.logger.ErrorContext(r.Context(), "oauth code exchange failed",
			logger.Provider(providerName),
			logger.Error(err),
		)
		respondError(w, http.StatusBadGateway, "provider is unavailable, try again later")
		return
	}

	claims, err := h.svc.SignInOAuth(r.Context(), account, profile)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "oauth sign-in failed",
			logger.Provider(providerName),
			logger.Error(err),
		)
		respondError(w, http.StatusServiceUnavailable, "sign-in is temporarily unavailable, try again later")
		return
	}

	if !h.issueSession(w, r, claims) {
		return
	}

	target := h.cfg.BaseURL
	if c, err := r.Cookie(redirectCookie); err == nil {
		target = auth.SanitizeRedirect(c.Value, h.cfg.BaseURL)
		h.clearCookie(w, redirectCookie)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
