package checkout

import (
	"context"
	"log/slog"

	"github.com/sparkserves/subscription-checkout/internal/core/events"
)

// EventHandler consumes checkout lifecycle events for the audit log. It is
// deliberately side-effect free beyond logging; anything that must not be
// lost belongs in the transaction, not here.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) RegisterHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePaymentVerified, h.handlePaymentVerified)
	eventBus.Subscribe(events.EventTypeCheckoutCompleted, h.handleCheckoutCompleted)
	eventBus.Subscribe(events.EventTypeCheckoutFailed, h.handleCheckoutFailed)
}

func (h *EventHandler) handlePaymentVerified(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	h.logger.Info("payment verified",
		"event_id", event.EventID(),
		"order_id", data["order_id"],
		"payment_id", data["payment_id"],
		"amount", data["amount"])
	return nil
}

func (h *EventHandler) handleCheckoutCompleted(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	h.logger.Info("checkout completed",
		"event_id", event.EventID(),
		"checkout_id", data["checkout_id"],
		"invoice_number", data["invoice_number"],
		"amount_paid", data["amount_paid"],
		"balance_due", data["balance_due"])
	return nil
}

func (h *EventHandler) handleCheckoutFailed(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})
	h.logger.Warn("checkout failed",
		"event_id", event.EventID(),
		"checkout_id", data["checkout_id"],
		"order_id", data["order_id"],
		"stage", data["stage"],
		"reason", data["reason"])
	return nil
}
