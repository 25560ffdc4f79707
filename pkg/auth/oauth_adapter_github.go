package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubOAuthConfig holds configuration for the GitHub OAuth provider.
// Leave ClientID empty to disable the provider.
type GitHubOAuthConfig struct {
	ClientID     string   `env:"GITHUB_OAUTH_CLIENT_ID"`
	ClientSecret string   `env:"GITHUB_OAUTH_CLIENT_SECRET"`
	RedirectURL  string   `env:"GITHUB_OAUTH_REDIRECT_URL"`
	Scopes       []string `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
}

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
	apiBaseURL string
}

// NewGitHubAdapter creates the GitHub provider adapter.
func NewGitHubAdapter(cfg GitHubOAuthConfig) ProviderAdapter {
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBaseURL: githubAPIBaseURL,
	}
}

func (a *githubAdapter) Provider() string {
	return ProviderGithub
}

func (a *githubAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the code for a token and fetches the user profile. The
// profile email may legitimately be empty here; the identity resolver owns
// the fallback chain, including the /user/emails lookup.
func (a *githubAdapter) Exchange(ctx context.Context, code string) (OAuthAccount, OAuthProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return OAuthAccount{}, OAuthProfile{}, ErrInvalidCode
	}

	u, err := a.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return OAuthAccount{}, OAuthProfile{}, fmt.Errorf("fetch github user: %w", err)
	}

	account := OAuthAccount{
		Provider:          ProviderGithub,
		ProviderAccountID: strconv.FormatInt(u.ID, 10),
		AccessToken:       tok.AccessToken,
	}
	profile := OAuthProfile{
		Email:   u.Email,
		Name:    u.Name,
		Login:   u.Login,
		Picture: u.AvatarURL,
	}
	return account, profile, nil
}

func (a *githubAdapter) fetchUser(ctx context.Context, accessToken string) (*ghUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiBaseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var user ghUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

type ghUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Compile-time interface assertion
var _ ProviderAdapter = (*githubAdapter)(nil)
