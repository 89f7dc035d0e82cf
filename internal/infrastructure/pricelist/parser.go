package pricelist

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/orderhub/backend/internal/domain/catalog"
)

// Wire structs mirror the YAML document layout. Prices arrive as scalars
// and are converted to decimals explicitly.
type rawPriceList struct {
	Shop       string        `yaml:"shop"`
	Categories []rawCategory `yaml:"categories"`
	Goods      []rawGood     `yaml:"goods"`
}

type rawCategory struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type rawGood struct {
	ID         int               `yaml:"id"`
	Category   int               `yaml:"category"`
	Name       string            `yaml:"name"`
	Model      string            `yaml:"model"`
	Price      string            `yaml:"price"`
	PriceRRC   string            `yaml:"price_rrc"`
	Quantity   int               `yaml:"quantity"`
	Parameters map[string]string `yaml:"parameters"`
}

// Parser decodes and validates supplier price-list documents
type Parser struct {
	validate *validator.Validate
}

// NewParser creates a new price-list parser
func NewParser() *Parser {
	return &Parser{validate: validator.New()}
}

// Parse decodes a YAML price list and validates its structure and
// internal references.
func (p *Parser) Parse(data []byte) (*catalog.PriceList, error) {
	var raw rawPriceList
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	doc := &catalog.PriceList{
		Shop:       raw.Shop,
		Categories: make([]catalog.PriceListCategory, 0, len(raw.Categories)),
		Goods:      make([]catalog.PriceListGood, 0, len(raw.Goods)),
	}

	for _, c := range raw.Categories {
		doc.Categories = append(doc.Categories, catalog.PriceListCategory{
			ID:   c.ID,
			Name: c.Name,
		})
	}

	for _, g := range raw.Goods {
		price, err := parsePrice(g.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: good %d has invalid price %q", ErrMalformedCatalog, g.ID, g.Price)
		}
		priceRRC, err := parsePrice(g.PriceRRC)
		if err != nil {
			return nil, fmt.Errorf("%w: good %d has invalid price_rrc %q", ErrMalformedCatalog, g.ID, g.PriceRRC)
		}

		doc.Goods = append(doc.Goods, catalog.PriceListGood{
			ID:         g.ID,
			Category:   g.Category,
			Name:       g.Name,
			Model:      g.Model,
			Price:      price,
			PriceRRC:   priceRRC,
			Quantity:   g.Quantity,
			Parameters: g.Parameters,
		})
	}

	if err := p.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	if err := doc.CheckReferences(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	return doc, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty price")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative price")
	}
	return d, nil
}
