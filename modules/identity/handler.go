package identity

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/brightpath/authkit/pkg/auth"
	"github.com/brightpath/authkit/pkg/logger"
	"github.com/brightpath/authkit/pkg/oauthstate"
)

// Handler serves the identity endpoints.
type Handler struct {
	cfg      Config
	svc      AuthService
	tokens   TokenService
	states   oauthstate.Store
	adapters map[string]auth.ProviderAdapter
	validate *validator.Validate
	logger   *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets a custom logger for the handler.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler creates the identity handler. Adapters determine which
// OAuth providers are routable; an empty slice disables the OAuth
// endpoints without disabling credential auth.
func NewHandler(cfg Config, svc AuthService, tokens TokenService, states oauthstate.Store, adapters []auth.ProviderAdapter, opts ...HandlerOption) *Handler {
	byName := make(map[string]auth.ProviderAdapter, len(adapters))
	for _, a := range adapters {
		byName[a.Provider()] = a
	}

	h := &Handler{
		cfg:      cfg,
		svc:      svc,
		tokens:   tokens,
		states:   states,
		adapters: byName,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Redirect string `json:"redirect"`
}

type sessionResponse struct {
	User     auth.SessionUser `json:"user"`
	Redirect string           `json:"redirect,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params := auth.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if _, err := h.svc.Register(r.Context(), params); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			respondError(w, http.StatusConflict, "an account with this email already exists")
		case errors.Is(err, auth.ErrWeakPassword):
			respondError(w, http.StatusUnprocessableEntity, "password does not meet the minimum requirements")
		default:
			h.logger.ErrorContext(r.Context(), "registration failed", logger.Error(err))
			respondError(w, http.StatusServiceUnavailable, "registration is temporarily unavailable, try again later")
		}
		return
	}

	// Fresh accounts are signed in right away.
	claims, err := h.svc.SignInCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "post-registration sign-in failed",
			logger.Email(req.Email), logger.Error(err))
		respondError(w, http.StatusServiceUnavailable, "registration succeeded but sign-in failed, try logging in")
		return
	}

	if !h.issueSession(w, r, claims) {
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{User: h.sessionUser(r, claims)})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.svc.SignInCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.ErrorContext(r.Context(), "credential sign-in failed", logger.Error(err))
		respondError(w, http.StatusServiceUnavailable, "sign-in is temporarily unavailable, try again later")
		return
	}

	if !h.issueSession(w, r, claims) {
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		User:     h.sessionUser(r, claims),
		Redirect: auth.SanitizeRedirect(req.Redirect, h.cfg.BaseURL),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, h.cfg.CookieName)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{User: session.User})
}

// issueSession signs the claims and sets the session cookie. Reports
// whether the response is still open for a body.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, claims auth.TokenClaims) bool {
	token, err := h.tokens.Issue(claims)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue session token",
			logger.UserID(claims.UserID), logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to establish session")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// sessionUser hydrates the freshest view of the user for the response body.
func (h *Handler) sessionUser(r *http.Request, claims auth.TokenClaims) auth.SessionUser {
	return h.svc.Hydrate(r.Context(), claims).User
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// decodeAndValidate binds the JSON body into v and validates it.
// Reports whether the request may proceed.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respondError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return fe.Field() + " must be a valid email address"
		case "min":
			return fe.Field() + " is too short"
		case "max":
			return fe.Field() + " is too long"
		}
		return fe.Field() + " is invalid"
	}
	return "invalid request"
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
