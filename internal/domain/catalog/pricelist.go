package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceList is the structured form of a supplier's catalog document.
// The YAML wire format is decoded and validated in infrastructure/pricelist.
type PriceList struct {
	Shop       string              `validate:"required,min=1,max=100"`
	Categories []PriceListCategory `validate:"required,min=1,dive"`
	Goods      []PriceListGood     `validate:"dive"`
}

// PriceListCategory is a category entry in a price list
type PriceListCategory struct {
	ID   int    `validate:"required,gt=0"`
	Name string `validate:"required,min=1,max=100"`
}

// PriceListGood is a single priced good in a price list
type PriceListGood struct {
	ID         int    `validate:"required,gt=0"`
	Category   int    `validate:"required,gt=0"`
	Name       string `validate:"required,min=1,max=200"`
	Model      string `validate:"max=100"`
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Quantity   int `validate:"gte=0"`
	Parameters map[string]string
}

// CheckReferences verifies every good points at a declared category
func (p *PriceList) CheckReferences() error {
	declared := make(map[int]struct{}, len(p.Categories))
	for _, c := range p.Categories {
		declared[c.ID] = struct{}{}
	}
	for _, g := range p.Goods {
		if _, ok := declared[g.Category]; !ok {
			return fmt.Errorf("good %d references undeclared category %d", g.ID, g.Category)
		}
	}
	return nil
}
