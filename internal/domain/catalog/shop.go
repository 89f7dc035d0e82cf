package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Shop represents a supplier storefront owned by a shop-type user.
// State controls whether the shop is currently accepting orders.
type Shop struct {
	shared.BaseAggregateRoot
	Name   string    `gorm:"size:100;not null;index"`
	URL    string    `gorm:"size:255"`
	State  bool      `gorm:"not null;default:true"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the database table name
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop for an owning user
func NewShop(name string, userID uuid.UUID) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot exceed 100 characters")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Shop owner cannot be empty")
	}

	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		State:             true,
		UserID:            userID,
	}, nil
}

// SetState switches order acceptance on or off
func (s *Shop) SetState(state bool) {
	if s.State == state {
		return
	}
	s.State = state
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetURL records the last price-list source URL
func (s *Shop) SetURL(url string) {
	s.URL = strings.TrimSpace(url)
	s.UpdatedAt = time.Now()
}
