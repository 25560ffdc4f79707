package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig holds configuration for the Google OAuth provider.
// Leave ClientID empty to disable the provider.
type GoogleOAuthConfig struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"https://www.googleapis.com/auth/userinfo.email,https://www.googleapis.com/auth/userinfo.profile"`
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleAdapter struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	userinfoURL string
}

// NewGoogleAdapter creates the Google provider adapter.
func NewGoogleAdapter(cfg GoogleOAuthConfig) ProviderAdapter {
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userinfoURL: googleUserinfoURL,
	}
}

func (a *googleAdapter) Provider() string {
	return ProviderGoogle
}

func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (a *googleAdapter) Exchange(ctx context.Context, code string) (OAuthAccount, OAuthProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return OAuthAccount{}, OAuthProfile{}, ErrInvalidCode
	}

	u, err := a.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return OAuthAccount{}, OAuthProfile{}, fmt.Errorf("fetch google user: %w", err)
	}

	account := OAuthAccount{
		Provider:          ProviderGoogle,
		ProviderAccountID: u.ID,
		AccessToken:       tok.AccessToken,
	}
	profile := OAuthProfile{
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
	}
	return account, profile, nil
}

func (a *googleAdapter) fetchUser(ctx context.Context, accessToken string) (*gUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var user gUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

type gUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Compile-time interface assertion
var _ ProviderAdapter = (*googleAdapter)(nil)
