package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentVerified   = "payment.verified"
	EventTypeCheckoutCompleted = "checkout.completed"
	EventTypeCheckoutFailed    = "checkout.failed"
)

type PaymentVerifiedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

func NewPaymentVerifiedEvent(orderID, paymentID string, amount int64) *PaymentVerifiedEvent {
	return &PaymentVerifiedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentVerified,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":   orderID,
				"payment_id": paymentID,
				"amount":     amount,
			},
		},
		OrderID:   orderID,
		PaymentID: paymentID,
		Amount:    amount,
	}
}

type CheckoutCompletedEvent struct {
	BaseEvent
	CheckoutID     string `json:"checkout_id"`
	OrderID        string `json:"order_id"`
	PaymentID      string `json:"payment_id"`
	CustomerID     int64  `json:"customer_id"`
	SubscriptionID int64  `json:"subscription_id"`
	InvoiceNumber  string `json:"invoice_number"`
	AmountPaid     int64  `json:"amount_paid"`
	BalanceDue     int64  `json:"balance_due"`
}

func NewCheckoutCompletedEvent(checkoutID, orderID, paymentID string, customerID, subscriptionID int64, invoiceNumber string, amountPaid, balanceDue int64) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCheckoutCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"checkout_id":     checkoutID,
				"order_id":        orderID,
				"payment_id":      paymentID,
				"customer_id":     customerID,
				"subscription_id": subscriptionID,
				"invoice_number":  invoiceNumber,
				"amount_paid":     amountPaid,
				"balance_due":     balanceDue,
			},
		},
		CheckoutID:     checkoutID,
		OrderID:        orderID,
		PaymentID:      paymentID,
		CustomerID:     customerID,
		SubscriptionID: subscriptionID,
		InvoiceNumber:  invoiceNumber,
		AmountPaid:     amountPaid,
		BalanceDue:     balanceDue,
	}
}

type CheckoutFailedEvent struct {
	BaseEvent
	CheckoutID string `json:"checkout_id"`
	OrderID    string `json:"order_id"`
	Stage      string `json:"stage"`
	Reason     string `json:"reason"`
}

func NewCheckoutFailedEvent(checkoutID, orderID, stage, reason string) *CheckoutFailedEvent {
	return &CheckoutFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCheckoutFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"checkout_id": checkoutID,
				"order_id":    orderID,
				"stage":       stage,
				"reason":      reason,
			},
		},
		CheckoutID: checkoutID,
		OrderID:    orderID,
		Stage:      stage,
		Reason:     reason,
	}
}
