package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Company   string
	Position  string
	Type      identity.UserType
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// ConfirmInput contains the input for email confirmation
type ConfirmInput struct {
	Email string
	Token string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        UserInfo  `json:"user"`
}

// UserInfo contains basic account information
type UserInfo struct {
	ID        uuid.UUID         `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Company   string            `json:"company"`
	Position  string            `json:"position"`
	Type      identity.UserType `json:"type"`
	IsActive  bool              `json:"is_active"`
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	TokenJTI     string
	RemainingTTL time.Duration
}

// UpdateAccountInput contains optional field changes for the account.
// A nil field is left untouched.
type UpdateAccountInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Company   *string
	Position  *string
	Password  *string
}

// RequestPasswordResetInput contains the input for starting a password reset
type RequestPasswordResetInput struct {
	Email string
}

// ConfirmPasswordResetInput contains the input for completing a password reset
type ConfirmPasswordResetInput struct {
	Email    string
	Token    string
	Password string
}

// ToUserInfo maps a user aggregate to its transport form
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Type:      user.Type,
		IsActive:  user.IsActive,
	}
}
