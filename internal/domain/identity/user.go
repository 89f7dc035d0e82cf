package identity

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/orderhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserType distinguishes supplier accounts from buyer accounts
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeShop  UserType = "shop"
)

// IsValid checks if the type is a valid UserType
func (t UserType) IsValid() bool {
	return t == UserTypeBuyer || t == UserTypeShop
}

// String returns the string representation of UserType
func (t UserType) String() string {
	return string(t)
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is the aggregate root for account operations.
// Accounts start inactive and become active once the email is confirmed.
type User struct {
	shared.BaseAggregateRoot
	Email        string   `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string   `gorm:"size:128;not null"`
	FirstName    string   `gorm:"size:100"`
	LastName     string   `gorm:"size:100"`
	Company      string   `gorm:"size:100"`
	Position     string   `gorm:"size:100"`
	Type         UserType `gorm:"size:10;not null;default:buyer"`
	IsActive     bool     `gorm:"not null;default:false"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a new inactive user with a hashed password
func NewUser(email, password string, userType UserType) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if userType == "" {
		userType = UserTypeBuyer
	}
	if !userType.IsValid() {
		return nil, shared.NewDomainError("INVALID_USER_TYPE", "User type must be buyer or shop")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		Type:              userType,
		IsActive:          false,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// Activate marks the account as confirmed
func (u *User) Activate() {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// SetName updates the user's name fields
func (u *User) SetName(firstName, lastName string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// SetCompany updates the company and position fields
func (u *User) SetCompany(company, position string) {
	u.Company = strings.TrimSpace(company)
	u.Position = strings.TrimSpace(position)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// SetPassword validates and replaces the user's password
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsShop reports whether the account is a supplier account
func (u *User) IsShop() bool {
	return u.Type == UserTypeShop
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

// ValidatePassword enforces the password strength policy
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must contain both letters and digits")
	}
	return nil
}
