package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightpath/authkit/pkg/auth"
)

func TestAccountLinkerLink(t *testing.T) {
	t.Parallel()

	params := auth.LinkParams{
		Email:             "jane@example.com",
		Name:              "Jane Doe",
		Image:             "https://cdn.example.com/jane.png",
		Provider:          auth.ProviderGithub,
		ProviderAccountID: "42",
	}

	t.Run("creates record for new identity", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(nil, auth.ErrUserNotFound)
		store.On("Create", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.Email == params.Email &&
				u.FirstName == "Jane" &&
				u.LastName == "Doe" &&
				u.Provider == auth.ProviderGithub &&
				u.ProviderAccountID == "42" &&
				u.EmailVerifiedAt != nil
		})).Return(&auth.User{ID: "u1", Email: params.Email}, nil)

		linker := auth.NewAccountLinker(store)
		user, err := linker.Link(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		store.AssertExpectations(t)
	})

	t.Run("placeholder email is never marked verified", func(t *testing.T) {
		t.Parallel()

		p := params
		p.Email = "octocat@github.local"

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, p.Email, p.Provider, p.ProviderAccountID).
			Return(nil, auth.ErrUserNotFound)
		store.On("Create", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.Email == p.Email && u.EmailVerifiedAt == nil
		})).Return(&auth.User{ID: "u1", Email: p.Email}, nil)

		linker := auth.NewAccountLinker(store)
		_, err := linker.Link(context.Background(), p)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("matching record without drift is returned untouched", func(t *testing.T) {
		t.Parallel()

		existing := &auth.User{
			ID:                "u1",
			Name:              params.Name,
			Email:             params.Email,
			Image:             params.Image,
			Provider:          params.Provider,
			ProviderAccountID: params.ProviderAccountID,
		}

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(existing, nil)

		linker := auth.NewAccountLinker(store)
		user, err := linker.Link(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, existing, user)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reconciles drifted provider fields", func(t *testing.T) {
		t.Parallel()

		// Credential account signing in with GitHub for the first time.
		existing := &auth.User{
			ID:       "u1",
			Name:     "Jane Doe",
			Email:    params.Email,
			Provider: auth.ProviderCredentials,
		}

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(existing, nil)
		store.On("Update", mock.Anything, "u1", mock.MatchedBy(func(p auth.UpdateUserParams) bool {
			return p.Provider != nil && *p.Provider == auth.ProviderGithub &&
				p.ProviderAccountID != nil && *p.ProviderAccountID == "42" &&
				p.Image != nil && *p.Image == params.Image &&
				p.Name == nil
		})).Return(&auth.User{ID: "u1", Provider: auth.ProviderGithub, ProviderAccountID: "42"}, nil)

		linker := auth.NewAccountLinker(store)
		user, err := linker.Link(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, auth.ProviderGithub, user.Provider)
		store.AssertExpectations(t)
	})

	t.Run("empty incoming fields never overwrite stored values", func(t *testing.T) {
		t.Parallel()

		p := auth.LinkParams{
			Email:             params.Email,
			Provider:          params.Provider,
			ProviderAccountID: params.ProviderAccountID,
		}
		existing := &auth.User{
			ID:                "u1",
			Name:              "Jane Doe",
			Email:             params.Email,
			Image:             "https://cdn.example.com/jane.png",
			Provider:          params.Provider,
			ProviderAccountID: params.ProviderAccountID,
		}

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, p.Email, p.Provider, p.ProviderAccountID).
			Return(existing, nil)

		linker := auth.NewAccountLinker(store)
		user, err := linker.Link(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recovers duplicate create race with one re-read", func(t *testing.T) {
		t.Parallel()

		winner := &auth.User{ID: "u1", Email: params.Email}

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(nil, auth.ErrUserNotFound).Once()
		store.On("Create", mock.Anything, mock.Anything).Return(nil, auth.ErrEmailTaken)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(winner, nil).Once()

		linker := auth.NewAccountLinker(store)
		user, err := linker.Link(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		store.AssertExpectations(t)
	})

	t.Run("re-read failure after race wraps link error", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(nil, auth.ErrUserNotFound).Once()
		store.On("Create", mock.Anything, mock.Anything).Return(nil, auth.ErrEmailTaken)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(nil, errors.New("timeout")).Once()

		linker := auth.NewAccountLinker(store)
		_, err := linker.Link(context.Background(), params)

		assert.ErrorIs(t, err, auth.ErrAccountLinkFailed)
	})

	t.Run("lookup failure wraps link error", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(nil, errors.New("connection refused"))

		linker := auth.NewAccountLinker(store)
		_, err := linker.Link(context.Background(), params)

		assert.ErrorIs(t, err, auth.ErrAccountLinkFailed)
	})

	t.Run("create failure other than duplicate wraps link error", func(t *testing.T) {
		t.Parallel()

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(nil, auth.ErrUserNotFound)
		store.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		linker := auth.NewAccountLinker(store)
		_, err := linker.Link(context.Background(), params)

		assert.ErrorIs(t, err, auth.ErrAccountLinkFailed)
	})

	t.Run("update failure wraps link error", func(t *testing.T) {
		t.Parallel()

		existing := &auth.User{ID: "u1", Email: params.Email, Provider: auth.ProviderCredentials}

		store := new(MockUserStore)
		store.On("FindByEmailOrProvider", mock.Anything, params.Email, params.Provider, params.ProviderAccountID).
			Return(existing, nil)
		store.On("Update", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("timeout"))

		linker := auth.NewAccountLinker(store)
		_, err := linker.Link(context.Background(), params)

		assert.ErrorIs(t, err, auth.ErrAccountLinkFailed)
	})
}
