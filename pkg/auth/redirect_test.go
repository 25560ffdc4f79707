package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath/authkit/pkg/auth"
)

func TestSanitizeRedirect(t *testing.T) {
	t.Parallel()

	const base = "https://app.example.com"

	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{name: "empty falls back to base", requested: "", want: base},
		{name: "relative path appended to base", requested: "/dashboard", want: base + "/dashboard"},
		{name: "relative path with query", requested: "/courses?tab=active", want: base + "/courses?tab=active"},
		{name: "same origin absolute url allowed", requested: base + "/settings", want: base + "/settings"},
		{name: "cross origin rejected", requested: "https://evil.com/phish", want: base},
		{name: "same host different scheme rejected", requested: "http://app.example.com/settings", want: base},
		{name: "scheme relative rejected", requested: "//evil.com/phish", want: base},
		{name: "unparsable rejected", requested: "https://%zz", want: base},
		{name: "subdomain rejected", requested: "https://evil.app.example.com", want: base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, auth.SanitizeRedirect(tt.requested, base))
		})
	}
}

func TestSanitizeRedirectTrailingSlashBase(t *testing.T) {
	t.Parallel()

	got := auth.SanitizeRedirect("/dashboard", "https://app.example.com/")
	assert.Equal(t, "https://app.example.com/dashboard", got)
}
