package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCartSessionContract checks behaviour every CartSessionRepository shares.
func testCartSessionContract(t *testing.T, repo port.CartSessionRepository) {
	t.Run("save and get", func(t *testing.T) {
		ctx := t.Context()
		sessionID := uuid.New()
		cartID := randomCartID()

		require.NoError(t, repo.SaveCartID(ctx, sessionID, cartID))

		got, err := repo.GetCartID(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, cartID, got)
	})

	t.Run("save replaces cart id", func(t *testing.T) {
		ctx := t.Context()
		sessionID := uuid.New()
		newCartID := randomCartID()

		require.NoError(t, repo.SaveCartID(ctx, sessionID, randomCartID()))
		require.NoError(t, repo.SaveCartID(ctx, sessionID, newCartID))

		got, err := repo.GetCartID(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, newCartID, got)
	})

	t.Run("unknown session has no cart", func(t *testing.T) {
		got, err := repo.GetCartID(t.Context(), uuid.New())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete session", func(t *testing.T) {
		ctx := t.Context()
		sessionID := uuid.New()
		require.NoError(t, repo.SaveCartID(ctx, sessionID, randomCartID()))

		deleted, err := repo.DeleteSession(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteSession(ctx, sessionID)
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := repo.GetCartID(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid input", func(t *testing.T) {
		ctx := t.Context()

		tests := []struct {
			name      string
			call      func() error
			wantError string
		}{
			{
				name: "get with nil session: error",
				call: func() error {
					_, err := repo.GetCartID(ctx, uuid.Nil)
					return err
				},
				wantError: "sessionID is empty",
			},
			{
				name: "save with nil session: error",
				call: func() error {
					return repo.SaveCartID(ctx, uuid.Nil, randomCartID())
				},
				wantError: "sessionID is empty",
			},
			{
				name: "save with empty cart id: error",
				call: func() error {
					return repo.SaveCartID(ctx, uuid.New(), "")
				},
				wantError: "cartID is empty",
			},
			{
				name: "delete with nil session: error",
				call: func() error {
					_, err := repo.DeleteSession(ctx, uuid.Nil)
					return err
				},
				wantError: "sessionID is empty",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				require.EqualError(t, tt.call(), tt.wantError)
			})
		}
	})
}

func randomCartID() string {
	return "gid://shopify/Cart/" + gofakeit.LetterN(24)
}
