package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/catalog"
)

// CategoryDTO is the transport form of a category
type CategoryDTO struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int       `json:"external_id"`
	Name       string    `json:"name"`
}

// ShopDTO is the transport form of a shop
type ShopDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// ParameterDTO is one named attribute value on a listing
type ParameterDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListingDTO is the transport form of a priced shop listing
type ListingDTO struct {
	ID         uuid.UUID       `json:"id"`
	Model      string          `json:"model,omitempty"`
	Product    string          `json:"product"`
	Category   string          `json:"category,omitempty"`
	Shop       ShopDTO         `json:"shop"`
	Price      decimal.Decimal `json:"price"`
	PriceRRC   decimal.Decimal `json:"price_rrc"`
	Quantity   int             `json:"quantity"`
	Parameters []ParameterDTO  `json:"parameters"`
}

// SearchListingsInput narrows a listing search
type SearchListingsInput struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// ToCategoryDTO maps a category to its transport form
func ToCategoryDTO(c *catalog.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, ExternalID: c.ExternalID, Name: c.Name}
}

// ToShopDTO maps a shop to its transport form
func ToShopDTO(s *catalog.Shop) ShopDTO {
	return ShopDTO{ID: s.ID, Name: s.Name, State: s.State}
}

// ToListingDTO maps a listing with loaded associations to its transport form
func ToListingDTO(info *catalog.ProductInfo) ListingDTO {
	dto := ListingDTO{
		ID:         info.ID,
		Model:      info.Model,
		Price:      info.Price,
		PriceRRC:   info.PriceRRC,
		Quantity:   info.Quantity,
		Parameters: make([]ParameterDTO, 0, len(info.Parameters)),
	}
	if info.Product != nil {
		dto.Product = info.Product.Name
		if info.Product.Category != nil {
			dto.Category = info.Product.Category.Name
		}
	}
	if info.Shop != nil {
		dto.Shop = ToShopDTO(info.Shop)
	}
	for i := range info.Parameters {
		p := info.Parameters[i]
		name := ""
		if p.Parameter != nil {
			name = p.Parameter.Name
		}
		dto.Parameters = append(dto.Parameters, ParameterDTO{Name: name, Value: p.Value})
	}
	return dto
}
