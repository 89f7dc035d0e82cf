package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductInfo is a shop's priced, quantified listing of a product.
// Listings are replaced wholesale on every price-list import.
type ProductInfo struct {
	shared.BaseEntity
	ProductID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	Product    *Product           `gorm:"foreignKey:ProductID"`
	ShopID     uuid.UUID          `gorm:"type:uuid;not null;index:idx_listings_shop_external,unique"`
	Shop       *Shop              `gorm:"foreignKey:ShopID"`
	ExternalID int                `gorm:"not null;index:idx_listings_shop_external,unique"`
	Model      string             `gorm:"size:100"`
	Price      decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PriceRRC   decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Quantity   int                `gorm:"not null"`
	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name
func (ProductInfo) TableName() string {
	return "product_infos"
}

// NewProductInfo creates a fresh listing for a product in a shop
func NewProductInfo(productID, shopID uuid.UUID, externalID int, model string, price, priceRRC decimal.Decimal, quantity int) (*ProductInfo, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop cannot be empty")
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External id must be positive")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ShopID:     shopID,
		ExternalID: externalID,
		Model:      strings.TrimSpace(model),
		Price:      price,
		PriceRRC:   priceRRC,
		Quantity:   quantity,
	}, nil
}

// AddParameter attaches a named attribute value to the listing
func (p *ProductInfo) AddParameter(parameterID uuid.UUID, value string) error {
	if parameterID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARAMETER", "Parameter cannot be empty")
	}
	for _, existing := range p.Parameters {
		if existing.ParameterID == parameterID {
			return shared.ErrAlreadyExists
		}
	}
	p.Parameters = append(p.Parameters, ProductParameter{
		BaseEntity:    shared.NewBaseEntity(),
		ProductInfoID: p.ID,
		ParameterID:   parameterID,
		Value:         value,
	})
	return nil
}

// Parameter is a named attribute shared across listings, e.g. "color"
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

// TableName returns the database table name
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new named attribute
func NewParameter(name string) (*Parameter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PARAMETER_NAME", "Parameter name cannot be empty")
	}
	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ProductParameter is the value of a parameter for one listing
type ProductParameter struct {
	shared.BaseEntity
	ProductInfoID uuid.UUID  `gorm:"type:uuid;not null;index:idx_listing_parameter,unique"`
	ParameterID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_listing_parameter,unique"`
	Parameter     *Parameter `gorm:"foreignKey:ParameterID"`
	Value         string     `gorm:"size:255;not null"`
}

// TableName returns the database table name
func (ProductParameter) TableName() string {
	return "product_parameters"
}
