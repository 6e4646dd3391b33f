package payment

import "time"

const (
	StatusCompleted = "completed"

	MethodRazorpay = "razorpay"
)

type Payment struct {
	ID                int64  `gorm:"primaryKey" json:"id"`
	InvoiceID         *int64 `gorm:"column:invoice_id;index" json:"invoice_id,omitempty"`
	Amount            int64  `gorm:"column:amount;not null" json:"amount"`
	Status            string `gorm:"column:status;not null" json:"status"`
	PaymentMethod     string `gorm:"column:payment_method;not null" json:"payment_method"`
	RazorpayPaymentID string `gorm:"column:razorpay_payment_id;not null;uniqueIndex" json:"razorpay_payment_id"`
	RazorpayOrderID   string `gorm:"column:razorpay_order_id;not null" json:"razorpay_order_id"`
	IsPartial         bool   `gorm:"column:is_partial;not null;default:false" json:"is_partial"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
