package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Token lifetimes
const (
	ConfirmTokenTTL       = 72 * time.Hour
	PasswordResetTokenTTL = 24 * time.Hour
)

const tokenKeyBytes = 20

// ConfirmEmailToken is a one-time credential for confirming an email address.
// At most one exists per user; it is deleted on successful confirmation.
type ConfirmEmailToken struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Key    string    `gorm:"size:64;not null;index"`
}

// TableName returns the database table name
func (ConfirmEmailToken) TableName() string {
	return "confirm_email_tokens"
}

// NewConfirmEmailToken creates a confirmation token for a user
func NewConfirmEmailToken(userID uuid.UUID) (*ConfirmEmailToken, error) {
	key, err := generateTokenKey()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate token")
	}
	return &ConfirmEmailToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        key,
	}, nil
}

// IsExpired reports whether the token has outlived its lifetime
func (t *ConfirmEmailToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > ConfirmTokenTTL
}

// PasswordResetToken is a one-time credential for resetting a password
type PasswordResetToken struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Key    string    `gorm:"size:64;not null;index"`
}

// TableName returns the database table name
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// NewPasswordResetToken creates a reset token for a user
func NewPasswordResetToken(userID uuid.UUID) (*PasswordResetToken, error) {
	key, err := generateTokenKey()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate token")
	}
	return &PasswordResetToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        key,
	}, nil
}

// IsExpired reports whether the token has outlived its lifetime
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > PasswordResetTokenTTL
}

func generateTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
