package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Product is an abstract product shared between shops
type Product struct {
	shared.BaseEntity
	Name       string    `gorm:"size:200;not null;index:idx_products_name_category,unique"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index:idx_products_name_category,unique"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product within a category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}
