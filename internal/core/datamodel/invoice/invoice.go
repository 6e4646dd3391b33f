package invoice

import "time"

const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
)

type Invoice struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	SubscriptionID int64     `gorm:"column:subscription_id;not null;index" json:"subscription_id"`
	CustomerID     int64     `gorm:"column:customer_id;not null;index" json:"customer_id"`
	InvoiceNumber  string    `gorm:"column:invoice_number;not null;uniqueIndex" json:"invoice_number"`
	Amount         int64     `gorm:"column:amount;not null" json:"amount"`
	TaxAmount      int64     `gorm:"column:tax_amount;not null;default:0" json:"tax_amount"`
	TotalAmount    int64     `gorm:"column:total_amount;not null" json:"total_amount"`
	PaidAmount     int64     `gorm:"column:paid_amount;not null" json:"paid_amount"`
	BalanceDue     int64     `gorm:"column:balance_due;not null" json:"balance_due"`
	DueDate        time.Time `gorm:"column:due_date;not null" json:"due_date"`
	Status         string    `gorm:"column:status;not null" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// StatusFor derives the invoice status from the outstanding balance.
func StatusFor(balanceDue int64) string {
	if balanceDue == 0 {
		return StatusPaid
	}
	return StatusPartial
}
