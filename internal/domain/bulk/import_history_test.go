package bulk

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImportHistory(t *testing.T) {
	userID := uuid.New()

	h, err := NewImportHistory(userID, "https://supplier.example.com/price.yaml")
	require.NoError(t, err)
	assert.Equal(t, userID, h.UserID)
	assert.Equal(t, ImportStatusPending, h.Status)
	assert.Nil(t, h.StartedAt)
	assert.Nil(t, h.CompletedAt)

	_, err = NewImportHistory(uuid.Nil, "https://supplier.example.com/price.yaml")
	assert.Error(t, err)

	_, err = NewImportHistory(userID, "")
	assert.Error(t, err)
}

func TestImportHistory_Lifecycle(t *testing.T) {
	t.Run("pending to processing to completed", func(t *testing.T) {
		h, err := NewImportHistory(uuid.New(), "https://supplier.example.com/price.yaml")
		require.NoError(t, err)

		require.NoError(t, h.Start())
		assert.Equal(t, ImportStatusProcessing, h.Status)
		require.NotNil(t, h.StartedAt)

		require.NoError(t, h.Complete(2, 5, 7))
		assert.Equal(t, ImportStatusCompleted, h.Status)
		assert.Equal(t, 2, h.CategoriesCreated)
		assert.Equal(t, 5, h.ProductsCreated)
		assert.Equal(t, 7, h.ListingsCreated)
		require.NotNil(t, h.CompletedAt)
	})

	t.Run("pending run can fail before start", func(t *testing.T) {
		h, err := NewImportHistory(uuid.New(), "https://supplier.example.com/price.yaml")
		require.NoError(t, err)

		require.NoError(t, h.Fail("queue rejected job"))
		assert.Equal(t, ImportStatusFailed, h.Status)
		assert.Equal(t, "queue rejected job", h.Error)
	})

	t.Run("cannot start twice", func(t *testing.T) {
		h, err := NewImportHistory(uuid.New(), "https://supplier.example.com/price.yaml")
		require.NoError(t, err)
		require.NoError(t, h.Start())

		assert.Error(t, h.Start())
	})

	t.Run("cannot complete without starting", func(t *testing.T) {
		h, err := NewImportHistory(uuid.New(), "https://supplier.example.com/price.yaml")
		require.NoError(t, err)

		assert.Error(t, h.Complete(1, 1, 1))
	})

	t.Run("terminal runs reject further transitions", func(t *testing.T) {
		h, err := NewImportHistory(uuid.New(), "https://supplier.example.com/price.yaml")
		require.NoError(t, err)
		require.NoError(t, h.Start())
		require.NoError(t, h.Complete(1, 1, 1))

		assert.Error(t, h.Fail("too late"))
		assert.Error(t, h.Start())
	})

	t.Run("failure reason truncated to column width", func(t *testing.T) {
		h, err := NewImportHistory(uuid.New(), "https://supplier.example.com/price.yaml")
		require.NoError(t, err)
		require.NoError(t, h.Start())

		require.NoError(t, h.Fail(strings.Repeat("x", 600)))
		assert.Len(t, h.Error, 500)
	})
}

func TestImportStatus(t *testing.T) {
	assert.True(t, ImportStatusCompleted.IsTerminal())
	assert.True(t, ImportStatusFailed.IsTerminal())
	assert.False(t, ImportStatusPending.IsTerminal())
	assert.False(t, ImportStatusProcessing.IsTerminal())

	assert.True(t, ImportStatusPending.IsValid())
	assert.False(t, ImportStatus("done").IsValid())
}
