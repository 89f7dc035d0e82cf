package partner

import (
	"context"

	"github.com/google/uuid"
)

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// FindByIDForUser finds a contact owned by the user
	FindByIDForUser(ctx context.Context, userID, contactID uuid.UUID) (*Contact, error)

	// FindByUser returns all of the user's contacts
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)

	// CountByUser returns the number of contacts the user has
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteForUser removes the user's contacts matching ids, returning the
	// number of rows deleted; foreign ids simply do not match
	DeleteForUser(ctx context.Context, userID uuid.UUID, contactIDs []uuid.UUID) (int64, error)
}
