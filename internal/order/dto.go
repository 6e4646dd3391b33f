package order

import (
	"github.com/sparkserves/subscription-checkout/internal/core/common/validation"
)

// DefaultCurrency is the only currency this service charges in.
const DefaultCurrency = "INR"

type CreateOrderRequest struct {
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Validate enforces the order contract: a positive integer amount of minor
// currency units, and a receipt id for gateway-side retry matching.
func (r *CreateOrderRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("amount", r.Amount).Required().Positive("INVALID_AMOUNT")
	validator.Field("receipt", r.Receipt).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type CreateOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
