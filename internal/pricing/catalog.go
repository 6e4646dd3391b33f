package pricing

import (
	"fmt"

	errors "github.com/sparkserves/subscription-checkout/internal"
)

// Product and tenure identifiers. The catalog is a fixed business artefact,
// not runtime data: an id outside it is a configuration error and callers
// must check membership before asking for a quote.
const (
	ProductDineFlow    = "dine-flow"
	ProductDineEase    = "dine-ease"
	ProductStoreAssist = "store-assist"

	TenureQuarterly  = "quarterly"
	TenureHalfYearly = "half-yearly"
	TenureYearly     = "yearly"
)

type Product struct {
	ID     string
	Name   string
	Prices map[string]int64 // tenure id -> base price in rupees
}

type Tenure struct {
	ID     string
	Name   string
	Months int
}

// Plan is one priced cell of the catalog: a product at a tenure.
type Plan struct {
	Product   Product
	Tenure    Tenure
	BasePrice int64
}

var products = map[string]Product{
	ProductDineFlow: {
		ID:   ProductDineFlow,
		Name: "Dine Flow",
		Prices: map[string]int64{
			TenureYearly:     7999,
			TenureHalfYearly: 4499,
			TenureQuarterly:  3499,
		},
	},
	ProductDineEase: {
		ID:   ProductDineEase,
		Name: "Dine Ease",
		Prices: map[string]int64{
			TenureYearly:     3999,
			TenureHalfYearly: 2499,
			TenureQuarterly:  1499,
		},
	},
	ProductStoreAssist: {
		ID:   ProductStoreAssist,
		Name: "Store Assist",
		Prices: map[string]int64{
			TenureYearly:     5999,
			TenureHalfYearly: 3499,
			TenureQuarterly:  2499,
		},
	},
}

var tenures = map[string]Tenure{
	TenureQuarterly:  {ID: TenureQuarterly, Name: "Quarterly", Months: 3},
	TenureHalfYearly: {ID: TenureHalfYearly, Name: "Half Yearly", Months: 6},
	TenureYearly:     {ID: TenureYearly, Name: "Annual", Months: 12},
}

// LookupPlan resolves a product/tenure pair against the static catalog.
func LookupPlan(productID, tenureID string) (Plan, error) {
	product, ok := products[productID]
	if !ok {
		return Plan{}, errors.NewValidationError(fmt.Sprintf("unknown product: %s", productID), errors.ErrCodeUnknownProduct)
	}

	tenure, ok := tenures[tenureID]
	if !ok {
		return Plan{}, errors.NewValidationError(fmt.Sprintf("unknown tenure: %s", tenureID), errors.ErrCodeUnknownTenure)
	}

	basePrice, ok := product.Prices[tenureID]
	if !ok {
		return Plan{}, errors.NewValidationError(fmt.Sprintf("product %s has no price for tenure %s", productID, tenureID), errors.ErrCodeUnknownTenure)
	}

	return Plan{Product: product, Tenure: tenure, BasePrice: basePrice}, nil
}

// Products returns the catalog products in a stable order for listings.
func Products() []Product {
	return []Product{
		products[ProductDineFlow],
		products[ProductDineEase],
		products[ProductStoreAssist],
	}
}

// Tenures returns the billing cycles ordered shortest first.
func Tenures() []Tenure {
	return []Tenure{
		tenures[TenureQuarterly],
		tenures[TenureHalfYearly],
		tenures[TenureYearly],
	}
}
