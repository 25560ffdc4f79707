package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath/authkit/pkg/auth"
)

func TestGitHubEmailClientListEmails(t *testing.T) {
	t.Parallel()

	t.Run("parses email listing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user/emails", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"email":"primary@example.com","primary":true,"verified":true},
				{"email":"old@example.com","primary":false,"verified":true}
			]`))
		}))
		defer srv.Close()

		client := auth.NewGitHubEmailClient(auth.WithGitHubBaseURL(srv.URL))
		emails, err := client.ListEmails(context.Background(), "tok")

		require.NoError(t, err)
		require.Len(t, emails, 2)
		assert.Equal(t, "primary@example.com", emails[0].Email)
		assert.True(t, emails[0].Primary)
		assert.True(t, emails[0].Verified)
	})

	t.Run("non 200 status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := auth.NewGitHubEmailClient(auth.WithGitHubBaseURL(srv.URL))
		_, err := client.ListEmails(context.Background(), "tok")

		assert.ErrorContains(t, err, "403")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}))
		defer srv.Close()

		client := auth.NewGitHubEmailClient(auth.WithGitHubBaseURL(srv.URL))
		_, err := client.ListEmails(context.Background(), "tok")

		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := auth.NewGitHubEmailClient(auth.WithGitHubBaseURL(srv.URL))
		_, err := client.ListEmails(ctx, "tok")

		assert.Error(t, err)
	})
}
