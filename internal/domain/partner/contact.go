package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Maximum number of delivery contacts per user
const MaxContactsPerUser = 5

// Contact is a delivery address and phone belonging to one user
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"size:50;not null"`
	Street    string    `gorm:"size:100;not null"`
	House     string    `gorm:"size:15"`
	Structure string    `gorm:"size:15"`
	Building  string    `gorm:"size:15"`
	Apartment string    `gorm:"size:15"`
	Phone     string    `gorm:"size:20;not null"`
}

// TableName returns the database table name
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a delivery contact for a user
func NewContact(userID uuid.UUID, city, street, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Contact owner cannot be empty")
	}
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	phone = strings.TrimSpace(phone)
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if street == "" {
		return nil, shared.NewDomainError("INVALID_STREET", "Street cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       city,
		Street:     street,
		Phone:      phone,
	}, nil
}

// SetAddressDetails fills the optional address parts
func (c *Contact) SetAddressDetails(house, structure, building, apartment string) {
	c.House = strings.TrimSpace(house)
	c.Structure = strings.TrimSpace(structure)
	c.Building = strings.TrimSpace(building)
	c.Apartment = strings.TrimSpace(apartment)
	c.UpdatedAt = time.Now()
}

// Update applies non-empty field changes
func (c *Contact) Update(city, street, phone *string) {
	if city != nil && strings.TrimSpace(*city) != "" {
		c.City = strings.TrimSpace(*city)
	}
	if street != nil && strings.TrimSpace(*street) != "" {
		c.Street = strings.TrimSpace(*street)
	}
	if phone != nil && strings.TrimSpace(*phone) != "" {
		c.Phone = strings.TrimSpace(*phone)
	}
	c.UpdatedAt = time.Now()
}
