package pricing

import "math"

type PaymentOption string

const (
	PaymentOptionFull    PaymentOption = "full"
	PaymentOptionPartial PaymentOption = "partial"
)

// partialFraction is the share collected up front for partial payments.
const partialFraction = 0.5

// Quote is the price breakdown for a plan. The 50% launch discount and the
// zero GST rate are fixed business rules, not per-request knobs.
type Quote struct {
	BasePrice      int64 `json:"base_price"`
	DiscountAmount int64 `json:"discount_amount"`
	Subtotal       int64 `json:"subtotal"`
	GSTAmount      int64 `json:"gst_amount"`
	Total          int64 `json:"total"`
}

// QuoteFor computes the price breakdown for a catalog plan. Pure function;
// callers have already validated the plan against the catalog.
func QuoteFor(plan Plan) Quote {
	discount := roundHalf(plan.BasePrice)
	subtotal := plan.BasePrice - discount

	return Quote{
		BasePrice:      plan.BasePrice,
		DiscountAmount: discount,
		Subtotal:       subtotal,
		GSTAmount:      0,
		Total:          subtotal,
	}
}

// ChargeNow returns the amount collected immediately for the chosen payment
// option. Partial collects half, rounded half-up, so the remainder is the
// smaller half when the total is odd.
func ChargeNow(total int64, option PaymentOption) int64 {
	if option == PaymentOptionPartial {
		return roundHalf(total)
	}
	return total
}

// RemainingAfter is the outstanding balance once the immediate charge is
// taken. Holds charge + remaining == total exactly.
func RemainingAfter(total, charge int64) int64 {
	return total - charge
}

func roundHalf(amount int64) int64 {
	return int64(math.Round(float64(amount) * partialFraction))
}
