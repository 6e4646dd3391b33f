package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sparkserves/subscription-checkout/internal/billing"
)

// InvoiceNumberGenerator mints the next invoice number inside the caller's
// transaction, so an aborted checkout never commits a number.
type InvoiceNumberGenerator interface {
	Next(tx *gorm.DB) (string, error)
}

// SequenceInvoiceNumberGenerator draws from the invoice_number_seq database
// sequence and formats numbers as INV-000123.
type SequenceInvoiceNumberGenerator struct{}

func (SequenceInvoiceNumberGenerator) Next(tx *gorm.DB) (string, error) {
	var seq int64
	if err := tx.Raw("SELECT nextval('invoice_number_seq')").Scan(&seq).Error; err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", seq), nil
}

type BillingRepository struct {
	db              *gorm.DB
	numberGenerator InvoiceNumberGenerator
}

func NewBillingRepository(db *gorm.DB, numberGenerator InvoiceNumberGenerator) *BillingRepository {
	return &BillingRepository{
		db:              db,
		numberGenerator: numberGenerator,
	}
}

// CreateCheckoutRecords inserts customer, subscription, invoice and payment
// in one transaction, wiring the generated ids across the rows as it goes.
func (r *BillingRepository) CreateCheckoutRecords(ctx context.Context, records *billing.Records) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(records.Customer).Error; err != nil {
			return fmt.Errorf("create customer: %w", err)
		}

		records.Subscription.CustomerID = records.Customer.ID
		if err := tx.Create(records.Subscription).Error; err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}

		number, err := r.numberGenerator.Next(tx)
		if err != nil {
			return err
		}
		records.Invoice.InvoiceNumber = number
		records.Invoice.SubscriptionID = records.Subscription.ID
		records.Invoice.CustomerID = records.Customer.ID
		if err := tx.Create(records.Invoice).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		records.Payment.InvoiceID = &records.Invoice.ID
		if err := tx.Create(records.Payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		return nil
	})
}
