package billing

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/customer"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/invoice"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/payment"
	"github.com/sparkserves/subscription-checkout/internal/core/datamodel/subscription"
)

type Service struct {
	repository RepositoryAPI
	logger     *slog.Logger
}

func NewService(repository RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// RecordCheckout writes the customer, subscription, invoice and payment for
// one verified checkout as a single unit. Callers only reach this after the
// signature verified, so a failure here means money moved but records did
// not: it surfaces as PAYMENT_NOT_RECORDED, never as a generic error.
func (s *Service) RecordCheckout(ctx context.Context, input *RecordCheckoutInput) (*RecordCheckoutResult, error) {
	endDate := input.StartDate.AddDate(0, input.TenureMonths, 0)
	balanceDue := input.TotalAmount - input.AmountPaid

	records := &Records{
		Customer: &customer.Customer{
			RestaurantName: input.RestaurantName,
			ProprietorName: input.ProprietorName,
			Address:        input.Address,
			Pincode:        input.Pincode,
			GSTNumber:      input.GSTNumber,
			PhoneNumber:    input.PhoneNumber,
		},
		Subscription: &subscription.Subscription{
			ProductType: input.ProductType,
			Tenure:      input.Tenure,
			Amount:      input.TotalAmount,
			StartDate:   input.StartDate,
			EndDate:     endDate,
			NextDueDate: endDate,
		},
		Invoice: &invoice.Invoice{
			Amount:      input.Amount,
			TaxAmount:   input.TaxAmount,
			TotalAmount: input.TotalAmount,
			PaidAmount:  input.AmountPaid,
			BalanceDue:  balanceDue,
			DueDate:     endDate,
			Status:      invoice.StatusFor(balanceDue),
		},
		Payment: &payment.Payment{
			Amount:            input.AmountPaid,
			Status:            payment.StatusCompleted,
			PaymentMethod:     payment.MethodRazorpay,
			RazorpayPaymentID: input.RazorpayPaymentID,
			RazorpayOrderID:   input.RazorpayOrderID,
			IsPartial:         input.IsPartial,
		},
	}

	// Bound the transaction; a wedged connection must not hold the
	// confirmation request open indefinitely.
	txCtx, cancel := errors.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.repository.CreateCheckoutRecords(txCtx, records); err != nil {
		s.logger.Error("checkout persistence failed",
			"error", err,
			"checkout_id", errors.CheckoutIDFromContext(ctx),
			"razorpay_order_id", input.RazorpayOrderID,
			"razorpay_payment_id", input.RazorpayPaymentID)
		return nil, errors.NewPaymentNotRecordedError(err)
	}

	result := &RecordCheckoutResult{
		CustomerID:     records.Customer.ID,
		SubscriptionID: records.Subscription.ID,
		InvoiceID:      records.Invoice.ID,
		InvoiceNumber:  records.Invoice.InvoiceNumber,
		PaymentID:      records.Payment.ID,
		BalanceDue:     records.Invoice.BalanceDue,
		InvoiceStatus:  records.Invoice.Status,
	}

	s.logger.Info("checkout recorded",
		"customer_id", result.CustomerID,
		"subscription_id", result.SubscriptionID,
		"invoice_number", result.InvoiceNumber,
		"invoice_status", result.InvoiceStatus,
		"balance_due", result.BalanceDue,
		"razorpay_payment_id", input.RazorpayPaymentID)

	return result, nil
}
