package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates inactive buyer with hashed password", func(t *testing.T) {
		user, err := NewUser("buyer@example.com", "secret123pass", UserTypeBuyer)

		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", user.Email)
		assert.Equal(t, UserTypeBuyer, user.Type)
		assert.False(t, user.IsActive)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret123pass", user.PasswordHash)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		registered, ok := events[0].(*UserRegisteredEvent)
		require.True(t, ok)
		assert.Equal(t, user.ID, registered.AggregateID())
		assert.Equal(t, "buyer@example.com", registered.Email)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("  Buyer@Example.COM  ", "secret123pass", UserTypeBuyer)

		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", user.Email)
	})

	t.Run("defaults empty type to buyer", func(t *testing.T) {
		user, err := NewUser("buyer@example.com", "secret123pass", "")

		require.NoError(t, err)
		assert.Equal(t, UserTypeBuyer, user.Type)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser("", "secret123pass", UserTypeBuyer)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "missing@tld", "@example.com"} {
			_, err := NewUser(email, "secret123pass", UserTypeBuyer)
			assert.Error(t, err, email)
		}
	})

	t.Run("fails with unknown user type", func(t *testing.T) {
		_, err := NewUser("buyer@example.com", "secret123pass", UserType("admin"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "buyer or shop")
	})
}

func TestValidatePassword(t *testing.T) {
	t.Run("accepts letters and digits", func(t *testing.T) {
		assert.NoError(t, ValidatePassword("secret123pass"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		err := ValidatePassword("ab1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("rejects digits only", func(t *testing.T) {
		err := ValidatePassword("12345678")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "letters and digits")
	})

	t.Run("rejects letters only", func(t *testing.T) {
		err := ValidatePassword("abcdefgh")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "letters and digits")
	})

	t.Run("rejects password over bcrypt limit", func(t *testing.T) {
		err := ValidatePassword(strings.Repeat("a1", 40))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "72 characters")
	})
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser("buyer@example.com", "secret123pass", UserTypeBuyer)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("secret123pass"))
	assert.False(t, user.CheckPassword("wrong-password1"))
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser("buyer@example.com", "secret123pass", UserTypeBuyer)
	require.NoError(t, err)
	oldHash := user.PasswordHash

	require.NoError(t, user.SetPassword("another456pass"))

	assert.NotEqual(t, oldHash, user.PasswordHash)
	assert.True(t, user.CheckPassword("another456pass"))
	assert.False(t, user.CheckPassword("secret123pass"))

	err = user.SetPassword("short1")
	require.Error(t, err)
	assert.True(t, user.CheckPassword("another456pass"))
}

func TestUser_Activate(t *testing.T) {
	user, err := NewUser("buyer@example.com", "secret123pass", UserTypeBuyer)
	require.NoError(t, err)
	version := user.Version

	user.Activate()
	assert.True(t, user.IsActive)
	assert.Equal(t, version+1, user.Version)

	// Repeated activation is a no-op
	user.Activate()
	assert.Equal(t, version+1, user.Version)
}

func TestUser_IsShop(t *testing.T) {
	shop, err := NewUser("shop@example.com", "secret123pass", UserTypeShop)
	require.NoError(t, err)
	buyer, err := NewUser("buyer@example.com", "secret123pass", UserTypeBuyer)
	require.NoError(t, err)

	assert.True(t, shop.IsShop())
	assert.False(t, buyer.IsShop())
}
