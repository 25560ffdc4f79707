package identity

import "time"

// Config holds the HTTP-facing settings of the identity module.
type Config struct {
	// BaseURL is the public origin of the application. Post-login
	// redirect targets are sanitized against it.
	BaseURL string `env:"AUTH_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieName is the session cookie name.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"session_token"`

	// SecureCookies marks cookies Secure; enable everywhere TLS terminates.
	SecureCookies bool `env:"AUTH_SECURE_COOKIES" envDefault:"false"`

	// StateTTL bounds how long an OAuth state token stays redeemable.
	StateTTL time.Duration `env:"AUTH_STATE_TTL" envDefault:"10m"`
}
