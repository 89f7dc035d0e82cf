package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ConfirmEmailTokenRepository defines the interface for confirmation token persistence
type ConfirmEmailTokenRepository interface {
	// GetOrCreate returns the user's existing token or creates a fresh one
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*ConfirmEmailToken, error)

	// FindByEmailAndKey finds a token by the owner's email and the token key
	FindByEmailAndKey(ctx context.Context, email, key string) (*ConfirmEmailToken, error)

	// Delete removes a token by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes tokens created before the cutoff, returning the count
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// PasswordResetTokenRepository defines the interface for reset token persistence
type PasswordResetTokenRepository interface {
	// Replace removes any existing token for the user and stores the new one
	Replace(ctx context.Context, token *PasswordResetToken) error

	// FindByEmailAndKey finds a token by the owner's email and the token key
	FindByEmailAndKey(ctx context.Context, email, key string) (*PasswordResetToken, error)

	// Delete removes a token by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes tokens created before the cutoff, returning the count
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
