package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	userID := uuid.New()

	t.Run("creates contact with trimmed fields", func(t *testing.T) {
		contact, err := NewContact(userID, "  Moscow ", " Tverskaya ", " +7 495 000-00-00 ")

		require.NoError(t, err)
		assert.Equal(t, userID, contact.UserID)
		assert.Equal(t, "Moscow", contact.City)
		assert.Equal(t, "Tverskaya", contact.Street)
		assert.Equal(t, "+7 495 000-00-00", contact.Phone)
		assert.Empty(t, contact.House)
	})

	t.Run("fails without owner", func(t *testing.T) {
		_, err := NewContact(uuid.Nil, "Moscow", "Tverskaya", "+7 495 000-00-00")
		assert.Error(t, err)
	})

	t.Run("fails with blank required fields", func(t *testing.T) {
		_, err := NewContact(userID, "  ", "Tverskaya", "+7 495 000-00-00")
		assert.Error(t, err)

		_, err = NewContact(userID, "Moscow", "", "+7 495 000-00-00")
		assert.Error(t, err)

		_, err = NewContact(userID, "Moscow", "Tverskaya", "")
		assert.Error(t, err)
	})
}

func TestContact_SetAddressDetails(t *testing.T) {
	contact, err := NewContact(uuid.New(), "Moscow", "Tverskaya", "+7 495 000-00-00")
	require.NoError(t, err)

	contact.SetAddressDetails(" 12 ", "1", "A", " 45 ")

	assert.Equal(t, "12", contact.House)
	assert.Equal(t, "1", contact.Structure)
	assert.Equal(t, "A", contact.Building)
	assert.Equal(t, "45", contact.Apartment)
}

func TestContact_Update(t *testing.T) {
	contact, err := NewContact(uuid.New(), "Moscow", "Tverskaya", "+7 495 000-00-00")
	require.NoError(t, err)

	city := "Kazan"
	empty := "  "
	contact.Update(&city, &empty, nil)

	assert.Equal(t, "Kazan", contact.City)
	// Blank and nil values leave fields untouched
	assert.Equal(t, "Tverskaya", contact.Street)
	assert.Equal(t, "+7 495 000-00-00", contact.Phone)
}
