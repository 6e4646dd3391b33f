package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sparkserves/subscription-checkout/internal/paymentgateway"
)

// GatewayAPI is the slice of the payment gateway the order side needs.
type GatewayAPI interface {
	CreateOrder(ctx context.Context, req paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error)
}

type Service struct {
	gateway GatewayAPI
	logger  *slog.Logger
}

func NewService(gateway GatewayAPI, logger *slog.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// NewReceiptID mints a receipt id for one checkout attempt. Receipts are
// never reused: a retry after failure gets a fresh one so the gateway never
// has to disambiguate two attempts sharing a receipt.
func NewReceiptID() string {
	return fmt.Sprintf("rcpt_%s", uuid.NewString())
}

// CreateOrder creates a gateway order for the given amount. Currency
// defaults to INR when the caller leaves it empty.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*paymentgateway.Order, error) {
	if err := req.Validate(); err != nil {
		s.logger.Error("order request validation failed", "error", err)
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, paymentgateway.CreateOrderRequest{
		AmountPaise: req.Amount,
		Currency:    currency,
		Receipt:     req.Receipt,
	})
	if err != nil {
		s.logger.Error("order creation failed", "error", err, "receipt", req.Receipt)
		return nil, err
	}

	s.logger.Info("order created",
		"order_id", gatewayOrder.ID,
		"amount_paise", gatewayOrder.AmountPaise,
		"receipt", req.Receipt)

	return gatewayOrder, nil
}
