package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/auth"
)

// AccountService handles registration, authentication and profile operations
type AccountService struct {
	userRepo       identity.UserRepository
	confirmTokens  identity.ConfirmEmailTokenRepository
	resetTokens    identity.PasswordResetTokenRepository
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo identity.UserRepository,
	confirmTokens identity.ConfirmEmailTokenRepository,
	resetTokens identity.PasswordResetTokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		userRepo:       userRepo,
		confirmTokens:  confirmTokens,
		resetTokens:    resetTokens,
		jwtService:     jwtService,
		blacklist:      blacklist,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Register creates a new inactive account and triggers the confirmation email
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.Type)
	if err != nil {
		return nil, err
	}
	user.SetName(input.FirstName, input.LastName)
	user.SetCompany(input.Company, input.Position)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == shared.ErrAlreadyExists {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.publishEvents(ctx, user)

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", user.Type.String()))

	return &RegisterResult{UserID: user.ID, Email: user.Email}, nil
}

// ConfirmEmail activates the account matching the email and token key.
// The token is single use and removed on success.
func (s *AccountService) ConfirmEmail(ctx context.Context, input ConfirmInput) error {
	token, err := s.confirmTokens.FindByEmailAndKey(ctx, input.Email, input.Token)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("INVALID_TOKEN", "Confirmation token is invalid")
		}
		return err
	}
	if token.IsExpired(time.Now()) {
		return shared.NewDomainError("TOKEN_EXPIRED", "Confirmation token has expired")
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	user.Activate()
	user.AddDomainEvent(identity.NewUserActivatedEvent(user))
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate account")
	}

	if err := s.confirmTokens.Delete(ctx, token.ID); err != nil {
		s.logger.Warn("Failed to delete used confirmation token", zap.Error(err))
	}

	s.publishEvents(ctx, user)
	return nil
}

// Login authenticates an active account and issues an access token
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, shared.ErrAuthFailed
	}
	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrAuthFailed
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Email address has not been confirmed")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.Type.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        ToUserInfo(user),
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AccountService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" || input.RemainingTTL <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.RemainingTTL); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}
	return nil
}

// GetAccount returns the account's profile
func (s *AccountService) GetAccount(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// UpdateAccount applies partial profile changes
func (s *AccountService) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil || input.LastName != nil {
		first, last := user.FirstName, user.LastName
		if input.FirstName != nil {
			first = *input.FirstName
		}
		if input.LastName != nil {
			last = *input.LastName
		}
		user.SetName(first, last)
	}
	if input.Company != nil || input.Position != nil {
		company, position := user.Company, user.Position
		if input.Company != nil {
			company = *input.Company
		}
		if input.Position != nil {
			position = *input.Position
		}
		user.SetCompany(company, position)
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
	}

	info := ToUserInfo(user)
	return &info, nil
}

// RequestPasswordReset issues a reset token for the account. Unknown emails
// succeed silently so the endpoint does not reveal which accounts exist.
func (s *AccountService) RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}

	token, err := identity.NewPasswordResetToken(user.ID)
	if err != nil {
		return err
	}
	if err := s.resetTokens.Replace(ctx, token); err != nil {
		s.logger.Error("Failed to store reset token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to request password reset")
	}

	if s.eventPublisher != nil {
		event := identity.NewPasswordResetRequestedEvent(user, token.Key)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish reset event", zap.Error(err))
		}
	}
	return nil
}

// ConfirmPasswordReset sets a new password using a valid reset token
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput) error {
	token, err := s.resetTokens.FindByEmailAndKey(ctx, input.Email, input.Token)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("INVALID_TOKEN", "Reset token is invalid")
		}
		return err
	}
	if token.IsExpired(time.Now()) {
		return shared.NewDomainError("TOKEN_EXPIRED", "Reset token has expired")
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	if err := s.resetTokens.Delete(ctx, token.ID); err != nil {
		s.logger.Warn("Failed to delete used reset token", zap.Error(err))
	}
	return nil
}

func (s *AccountService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range user.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	user.ClearDomainEvents()
}
