package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/brightpath/authkit/pkg/auth"
)

func TestSessionHydratorHydrate(t *testing.T) {
	t.Parallel()

	claims := auth.TokenClaims{
		UserID:   "u1",
		Name:     "Jane",
		Email:    "jane@example.com",
		Picture:  "https://avatars.example.com/42",
		Provider: auth.ProviderGithub,
	}

	t.Run("full session from store record", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("ValidID", "u1").Return(true)
		store.On("FindByID", mock.Anything, "u1").Return(&auth.User{
			ID:        "u1",
			Name:      "Jane Doe",
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@newdomain.com",
			Image:     "https://cdn.example.com/jane.png",
			Provider:  auth.ProviderGithub,
		}, nil)

		hydrator := auth.NewSessionHydrator(store)
		session := hydrator.Hydrate(context.Background(), claims)

		assert.Equal(t, "u1", session.User.ID)
		assert.Equal(t, "Jane Doe", session.User.Name)
		assert.Equal(t, "jane@newdomain.com", session.User.Email, "store wins over stale token claims")
		assert.Equal(t, "Jane", session.User.FirstName)
		assert.Equal(t, "Doe", session.User.LastName)
	})

	t.Run("malformed id skips the store", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("ValidID", "u1").Return(false)

		hydrator := auth.NewSessionHydrator(store)
		session := hydrator.Hydrate(context.Background(), claims)

		assert.Equal(t, "u1", session.User.ID)
		assert.Equal(t, "Jane", session.User.Name)
		assert.Equal(t, "jane@example.com", session.User.Email)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing record degrades to minimal session", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("ValidID", "u1").Return(true)
		store.On("FindByID", mock.Anything, "u1").Return(nil, auth.ErrUserNotFound)

		hydrator := auth.NewSessionHydrator(store)
		session := hydrator.Hydrate(context.Background(), claims)

		assert.Equal(t, "u1", session.User.ID)
		assert.Equal(t, "Jane", session.User.Name)
		assert.Empty(t, session.User.FirstName)
	})

	t.Run("store failure degrades to minimal session", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("ValidID", "u1").Return(true)
		store.On("FindByID", mock.Anything, "u1").Return(nil, errors.New("timeout"))

		hydrator := auth.NewSessionHydrator(store)
		session := hydrator.Hydrate(context.Background(), claims)

		assert.Equal(t, "u1", session.User.ID)
		assert.Equal(t, auth.ProviderGithub, session.User.Provider)
	})
}
