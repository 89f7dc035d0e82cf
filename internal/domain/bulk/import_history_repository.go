package bulk

import (
	"context"

	"github.com/google/uuid"
)

// ImportHistoryRepository defines the interface for import history persistence
type ImportHistoryRepository interface {
	// Save creates or updates an import history record
	Save(ctx context.Context, history *ImportHistory) error

	// FindByID finds an import record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ImportHistory, error)

	// FindByUser returns a user's import runs, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]ImportHistory, error)
}
