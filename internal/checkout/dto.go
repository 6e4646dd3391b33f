package checkout

import (
	errors "github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/core/common/validation"
	"github.com/sparkserves/subscription-checkout/internal/pricing"
)

// FormSnapshot is the customer detail form as submitted at checkout. It is
// held in the session and only written to the database after the payment
// verifies.
type FormSnapshot struct {
	RestaurantName string  `json:"restaurant_name"`
	ProprietorName string  `json:"proprietor_name"`
	Address        string  `json:"address"`
	Pincode        string  `json:"pincode"`
	GSTNumber      *string `json:"gst_number,omitempty"`
	PhoneNumber    string  `json:"phone_number"`
}

type CheckoutRequest struct {
	FormSnapshot
	ProductType   string `json:"product_type"`
	Tenure        string `json:"tenure"`
	PaymentOption string `json:"payment_option"`
}

// Option normalises the payment option, defaulting to a full payment.
func (r *CheckoutRequest) Option() pricing.PaymentOption {
	if r.PaymentOption == string(pricing.PaymentOptionPartial) {
		return pricing.PaymentOptionPartial
	}
	return pricing.PaymentOptionFull
}

func (r *CheckoutRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("restaurant_name", r.RestaurantName).Required().MaxLength(200)
	validator.Field("proprietor_name", r.ProprietorName).Required().MaxLength(200)
	validator.Field("address", r.Address).Required().MaxLength(500)
	validator.Field("pincode", r.Pincode).Required().Digits().MinLength(6).MaxLength(6)
	validator.Field("phone_number", r.PhoneNumber).Required().Digits().MinLength(10).MaxLength(10)
	validator.Field("product_type", r.ProductType).Required()
	validator.Field("tenure", r.Tenure).Required()

	validator.Field("payment_option", r.PaymentOption).Custom(func(value interface{}) *errors.AppError {
		v, _ := value.(string)
		switch v {
		case "", string(pricing.PaymentOptionFull), string(pricing.PaymentOptionPartial):
			return nil
		}
		return errors.NewValidationFieldError("payment_option", "payment_option must be full or partial", errors.ErrCodeValidationFailed)
	})

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Prefill seeds the payment widget with the customer's details.
type Prefill struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type CheckoutResponse struct {
	CheckoutID    string        `json:"checkout_id"`
	OrderID       string        `json:"order_id"`
	AmountPaise   int64         `json:"amount"`
	Currency      string        `json:"currency"`
	KeyID         string        `json:"key_id"`
	DisplayName   string        `json:"display_name"`
	Description   string        `json:"description"`
	PaymentOption string        `json:"payment_option"`
	ChargeAmount  int64         `json:"charge_amount"`
	BalanceDue    int64         `json:"balance_due"`
	Quote         pricing.Quote `json:"quote"`
	Prefill       Prefill       `json:"prefill"`
}

// ConfirmRequest carries the gateway handoff verbatim. The field names are
// the gateway's own and must not be renamed.
type ConfirmRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (r *ConfirmRequest) Complete() bool {
	return r.RazorpayOrderID != "" && r.RazorpayPaymentID != "" && r.RazorpaySignature != ""
}

type ConfirmResponse struct {
	Status         string `json:"status"`
	OrderID        string `json:"order_id"`
	PaymentID      string `json:"payment_id"`
	CustomerID     int64  `json:"customer_id"`
	SubscriptionID int64  `json:"subscription_id"`
	InvoiceNumber  string `json:"invoice_number"`
	InvoiceStatus  string `json:"invoice_status"`
	AmountPaid     int64  `json:"amount_paid"`
	BalanceDue     int64  `json:"balance_due"`
}

// PlanQuoteView is one tenure's pricing for a product in the public plans
// listing.
type PlanQuoteView struct {
	Tenure     string        `json:"tenure"`
	TenureName string        `json:"tenure_name"`
	Months     int           `json:"months"`
	Quote      pricing.Quote `json:"quote"`
}

type PlanView struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Tenures     []PlanQuoteView `json:"tenures"`
}

type PlansResponse struct {
	Plans []PlanView `json:"plans"`
}
