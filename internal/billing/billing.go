package billing

import (
	"context"
	"time"

	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/customer"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/invoice"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/payment"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/subscription"
)

// Records is the write-once bundle one verified checkout produces. All four
// rows land in a single transaction or none of them do.
type Records struct {
	Customer     *customer.Customer
	Subscription *subscription.Subscription
	Invoice      *invoice.Invoice
	Payment      *payment.Payment
}

// RepositoryAPI persists a checkout as one atomic unit. The invoice number
// is generated inside the same transaction so a rollback never burns a
// committed row with a gap the books have to explain.
type RepositoryAPI interface {
	CreateCheckoutRecords(ctx context.Context, records *Records) error
}

// RecordCheckoutInput carries everything the persistence gateway needs from
// a verified checkout. Amounts are rupees, matching the invoice ledger.
type RecordCheckoutInput struct {
	RestaurantName string
	ProprietorName string
	Address        string
	Pincode        string
	GSTNumber      *string
	PhoneNumber    string

	ProductType  string
	Tenure       string
	TenureMonths int

	Amount      int64 // pre-tax subscription amount
	TaxAmount   int64
	TotalAmount int64
	AmountPaid  int64
	IsPartial   bool

	RazorpayOrderID   string
	RazorpayPaymentID string

	StartDate time.Time
}

// RecordCheckoutResult reports what was written, for the completion event
// and the confirmation response.
type RecordCheckoutResult struct {
	CustomerID     int64
	SubscriptionID int64
	InvoiceID      int64
	InvoiceNumber  string
	PaymentID      int64
	BalanceDue     int64
	InvoiceStatus  string
}
