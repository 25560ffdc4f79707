package oauthstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath/authkit/pkg/oauthstate"
)

func TestNewState(t *testing.T) {
	t.Parallel()

	first, err := oauthstate.NewState()
	require.NoError(t, err)
	second, err := oauthstate.NewState()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
	assert.NotContains(t, first, "=")
}

func TestMemoryStoreConsume(t *testing.T) {
	t.Parallel()

	t.Run("redeems saved state once", func(t *testing.T) {
		t.Parallel()

		store := oauthstate.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "abc", time.Minute))
		require.NoError(t, store.Consume(ctx, "abc"))

		err := store.Consume(ctx, "abc")
		assert.ErrorIs(t, err, oauthstate.ErrStateNotFound)
	})

	t.Run("unknown state", func(t *testing.T) {
		t.Parallel()

		store := oauthstate.NewMemoryStore()
		err := store.Consume(context.Background(), "never-saved")
		assert.ErrorIs(t, err, oauthstate.ErrStateNotFound)
	})

	t.Run("expired state", func(t *testing.T) {
		t.Parallel()

		store := oauthstate.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "abc", -time.Second))
		err := store.Consume(ctx, "abc")
		assert.ErrorIs(t, err, oauthstate.ErrStateNotFound)
	})
}
