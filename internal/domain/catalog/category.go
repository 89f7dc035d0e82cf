package catalog

import (
	"strings"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Category groups products and is shared across shops.
// ExternalID is the identifier used in supplier price-list documents.
type Category struct {
	shared.BaseEntity
	ExternalID int    `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"size:100;not null"`
	Shops      []Shop `gorm:"many2many:shop_categories"`
}

// TableName returns the database table name
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category keyed by its price-list identifier
func NewCategory(externalID int, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Category id must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Name:       name,
	}, nil
}
