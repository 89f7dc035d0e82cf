package pricelist

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleDoc = `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
  - id: 15
    name: Accessories
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xs-max
    name: Smartphone apple iphone xs max 512gb
    price: 110000
    price_rrc: 116990.50
    quantity: 14
    parameters:
      "Screen Size (inches)": "6.5"
      "Color": gold
  - id: 4216313
    category: 224
    model: apple/iphone/xr
    name: Smartphone apple iphone xr 256gb
    price: 65000
    price_rrc: 69990
    quantity: 9
`

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	t.Run("parses a valid document", func(t *testing.T) {
		doc, err := p.Parse([]byte(sampleDoc))
		require.NoError(t, err)

		assert.Equal(t, "Svyaznoy", doc.Shop)
		require.Len(t, doc.Categories, 2)
		assert.Equal(t, 224, doc.Categories[0].ID)
		assert.Equal(t, "Smartphones", doc.Categories[0].Name)

		require.Len(t, doc.Goods, 2)
		good := doc.Goods[0]
		assert.Equal(t, 4216292, good.ID)
		assert.Equal(t, 224, good.Category)
		assert.True(t, good.Price.Equal(decimal.NewFromInt(110000)))
		assert.True(t, good.PriceRRC.Equal(decimal.RequireFromString("116990.50")))
		assert.Equal(t, 14, good.Quantity)
		assert.Equal(t, "gold", good.Parameters["Color"])
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		_, err := p.Parse([]byte("shop: [unclosed"))
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("rejects missing shop name", func(t *testing.T) {
		doc := `
categories:
  - id: 1
    name: Stuff
goods: []
`
		_, err := p.Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("rejects empty categories", func(t *testing.T) {
		doc := `
shop: Test
categories: []
goods: []
`
		_, err := p.Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("rejects good referencing undeclared category", func(t *testing.T) {
		doc := `
shop: Test
categories:
  - id: 1
    name: Stuff
goods:
  - id: 10
    category: 99
    name: Widget
    price: 100
    price_rrc: 120
    quantity: 1
`
		_, err := p.Parse([]byte(doc))
		require.ErrorIs(t, err, ErrMalformedCatalog)
		assert.Contains(t, err.Error(), "undeclared category")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		doc := `
shop: Test
categories:
  - id: 1
    name: Stuff
goods:
  - id: 10
    category: 1
    name: Widget
    price: -5
    price_rrc: 120
    quantity: 1
`
		_, err := p.Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("rejects non-numeric price", func(t *testing.T) {
		doc := `
shop: Test
categories:
  - id: 1
    name: Stuff
goods:
  - id: 10
    category: 1
    name: Widget
    price: free
    price_rrc: 120
    quantity: 1
`
		_, err := p.Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		doc := `
shop: Test
categories:
  - id: 1
    name: Stuff
goods:
  - id: 10
    category: 1
    name: Widget
    price: 100
    price_rrc: 120
    quantity: -1
`
		_, err := p.Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrMalformedCatalog)
	})
}

func TestFetcher_RejectsBadURLs(t *testing.T) {
	f := NewFetcher(FetcherConfig{}, zap.NewNop())

	for _, raw := range []string{"", "ftp://example.com/x.yaml", "not a url", "file:///etc/passwd"} {
		_, err := f.Fetch(t.Context(), raw)
		assert.ErrorIs(t, err, ErrFetchFailed, "url %q", raw)
	}
}
