package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath/authkit/pkg/auth"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{name: "already normalized", email: "user@example.com", want: "user@example.com"},
		{name: "uppercase", email: "User@Example.COM", want: "user@example.com"},
		{name: "surrounding whitespace", email: "  user@example.com \n", want: "user@example.com"},
		{name: "consecutive dots collapsed", email: "first..last@example.com", want: "first.last@example.com"},
		{name: "many dots collapsed", email: "a....b...c@example.com", want: "a.b.c@example.com"},
		{name: "leading and trailing dots trimmed", email: ".user.@example.com", want: "user@example.com"},
		{name: "no at sign returned as is", email: "not-an-email", want: "not-an-email"},
		{name: "empty", email: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, auth.NormalizeEmail(tt.email))
		})
	}
}

func TestIsPlaceholderEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "github placeholder", email: "octocat@github.local", want: true},
		{name: "google placeholder", email: "someone@google.local", want: true},
		{name: "real address", email: "user@example.com", want: false},
		{name: "local in local part only", email: "github.local@example.com", want: false},
		{name: "no at sign", email: "github.local", want: false},
		{name: "empty", email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, auth.IsPlaceholderEmail(tt.email))
		})
	}
}
