package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
)

// GormConfirmEmailTokenRepository implements identity.ConfirmEmailTokenRepository using GORM
type GormConfirmEmailTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmEmailTokenRepository creates a new GormConfirmEmailTokenRepository
func NewGormConfirmEmailTokenRepository(db *gorm.DB) *GormConfirmEmailTokenRepository {
	return &GormConfirmEmailTokenRepository{db: db}
}

// GetOrCreate returns the user's existing confirmation token or creates a fresh one
func (r *GormConfirmEmailTokenRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*identity.ConfirmEmailToken, error) {
	var token identity.ConfirmEmailToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh, err := identity.NewConfirmEmailToken(userID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// Concurrent creation for the same user hits the unique index;
		// fall back to the winner's token.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing identity.ConfirmEmailToken
			if ferr := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return fresh, nil
}

// FindByEmailAndKey finds a confirmation token by the owner's email and the token key
func (r *GormConfirmEmailTokenRepository) FindByEmailAndKey(ctx context.Context, email, key string) (*identity.ConfirmEmailToken, error) {
	var token identity.ConfirmEmailToken
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = confirm_email_tokens.user_id").
		Where("users.email = ? AND confirm_email_tokens.key = ?", strings.ToLower(email), key).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Delete removes a confirmation token by ID
func (r *GormConfirmEmailTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&identity.ConfirmEmailToken{}, "id = ?", id).Error
}

// DeleteExpired removes confirmation tokens created before the cutoff
func (r *GormConfirmEmailTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&identity.ConfirmEmailToken{})
	return result.RowsAffected, result.Error
}

var _ identity.ConfirmEmailTokenRepository = (*GormConfirmEmailTokenRepository)(nil)

// GormPasswordResetTokenRepository implements identity.PasswordResetTokenRepository using GORM
type GormPasswordResetTokenRepository struct {
	db *gorm.DB
}

// NewGormPasswordResetTokenRepository creates a new GormPasswordResetTokenRepository
func NewGormPasswordResetTokenRepository(db *gorm.DB) *GormPasswordResetTokenRepository {
	return &GormPasswordResetTokenRepository{db: db}
}

// Replace removes any existing reset token for the user and stores the new one
func (r *GormPasswordResetTokenRepository) Replace(ctx context.Context, token *identity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).
			Delete(&identity.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// FindByEmailAndKey finds a reset token by the owner's email and the token key
func (r *GormPasswordResetTokenRepository) FindByEmailAndKey(ctx context.Context, email, key string) (*identity.PasswordResetToken, error) {
	var token identity.PasswordResetToken
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = password_reset_tokens.user_id").
		Where("users.email = ? AND password_reset_tokens.key = ?", strings.ToLower(email), key).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Delete removes a reset token by ID
func (r *GormPasswordResetTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&identity.PasswordResetToken{}, "id = ?", id).Error
}

// DeleteExpired removes reset tokens created before the cutoff
func (r *GormPasswordResetTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&identity.PasswordResetToken{})
	return result.RowsAffected, result.Error
}

var _ identity.PasswordResetTokenRepository = (*GormPasswordResetTokenRepository)(nil)
