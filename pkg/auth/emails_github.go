package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const githubAPIBaseURL = "https://api.github.com"

// GitHubEmailClient fetches the authenticated user's email addresses from
// the GitHub API. It implements ProviderEmailClient.
type GitHubEmailClient struct {
	httpClient *http.Client
	baseURL    string
}

// GitHubEmailOption configures a GitHubEmailClient.
type GitHubEmailOption func(*GitHubEmailClient)

// WithGitHubHTTPClient replaces the default HTTP client.
func WithGitHubHTTPClient(c *http.Client) GitHubEmailOption {
	return func(g *GitHubEmailClient) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithGitHubBaseURL overrides the API base URL, primarily for tests.
func WithGitHubBaseURL(u string) GitHubEmailOption {
	return func(g *GitHubEmailClient) {
		if u != "" {
			g.baseURL = u
		}
	}
}

// NewGitHubEmailClient creates a client for the GitHub email listing API.
func NewGitHubEmailClient(opts ...GitHubEmailOption) *GitHubEmailClient {
	g := &GitHubEmailClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    githubAPIBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ListEmails calls GET /user/emails with the bearer token.
func (g *GitHubEmailClient) ListEmails(ctx context.Context, accessToken string) ([]ProviderEmail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/user/emails", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var emails []ProviderEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return nil, err
	}

	return emails, nil
}

// Compile-time interface assertion
var _ ProviderEmailClient = (*GitHubEmailClient)(nil)
