package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("buyer@example.com", "password123", identity.UserTypeBuyer)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup, err := identity.NewUser("buyer@example.com", "password456", identity.UserTypeBuyer)
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, found.Email)
		assert.False(t, found.IsActive)
	})

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Buyer@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("reports existence", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "buyer@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing user yields ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update persists activation", func(t *testing.T) {
		user.Activate()
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, found.IsActive)
	})
}

func TestGormConfirmEmailTokenRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserRepository(db)
	repo := NewGormConfirmEmailTokenRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("confirm@example.com", "password123", identity.UserTypeBuyer)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))

	t.Run("creates then reuses token", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, first.Key)

		second, err := repo.GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Key, second.Key)
	})

	t.Run("finds by email and key", func(t *testing.T) {
		token, err := repo.GetOrCreate(ctx, user.ID)
		require.NoError(t, err)

		found, err := repo.FindByEmailAndKey(ctx, "confirm@example.com", token.Key)
		require.NoError(t, err)
		assert.Equal(t, token.ID, found.ID)

		_, err = repo.FindByEmailAndKey(ctx, "confirm@example.com", "wrong-key")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete removes the token", func(t *testing.T) {
		token, err := repo.GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, token.ID))

		_, err = repo.FindByEmailAndKey(ctx, "confirm@example.com", token.Key)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPasswordResetTokenRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserRepository(db)
	repo := NewGormPasswordResetTokenRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("reset@example.com", "password123", identity.UserTypeBuyer)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))

	t.Run("replace supersedes the previous token", func(t *testing.T) {
		first, err := identity.NewPasswordResetToken(user.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Replace(ctx, first))

		second, err := identity.NewPasswordResetToken(user.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Replace(ctx, second))

		_, err = repo.FindByEmailAndKey(ctx, "reset@example.com", first.Key)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := repo.FindByEmailAndKey(ctx, "reset@example.com", second.Key)
		require.NoError(t, err)
		assert.Equal(t, second.ID, found.ID)
	})
}
