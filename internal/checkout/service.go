package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	internal "github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/billing"
	"github.com/sparkserves/subscription-checkout/internal/core/events"
	"github.com/sparkserves/subscription-checkout/internal/order"
	"github.com/sparkserves/subscription-checkout/internal/paymentgateway"
	"github.com/sparkserves/subscription-checkout/internal/pricing"
	"github.com/sparkserves/subscription-checkout/internal/verification"
)

// GatewayAPI is the slice of the payment gateway the orchestrator needs:
// creating orders and re-fetching them to cross-check amounts.
type GatewayAPI interface {
	CreateOrder(ctx context.Context, req paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error)
	FetchOrder(ctx context.Context, orderID string) (*paymentgateway.Order, error)
}

type VerifierAPI interface {
	Verify(orderID, paymentID, signature string) verification.Result
}

type BillingAPI interface {
	RecordCheckout(ctx context.Context, input *billing.RecordCheckoutInput) (*billing.RecordCheckoutResult, error)
}

type Service struct {
	sessions      *SessionStore
	gateway       GatewayAPI
	verifier      VerifierAPI
	billing       BillingAPI
	eventBus      *events.EventBus
	gatewayConfig internal.RazorpayConfig
	logger        *slog.Logger
}

func NewService(
	sessions *SessionStore,
	gateway GatewayAPI,
	verifier VerifierAPI,
	billingService BillingAPI,
	eventBus *events.EventBus,
	gatewayConfig internal.RazorpayConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions:      sessions,
		gateway:       gateway,
		verifier:      verifier,
		billing:       billingService,
		eventBus:      eventBus,
		gatewayConfig: gatewayConfig,
		logger:        logger,
	}
}

// StartCheckout validates the form, prices the plan server-side and creates
// the gateway order for the amount due now. Client-submitted amounts are
// never used anywhere in this flow.
func (s *Service) StartCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan, err := pricing.LookupPlan(req.ProductType, req.Tenure)
	if err != nil {
		return nil, err
	}

	quote := pricing.QuoteFor(plan)
	option := req.Option()
	charge := pricing.ChargeNow(quote.Total, option)
	receipt := order.NewReceiptID()

	gatewayOrder, err := s.gateway.CreateOrder(ctx, paymentgateway.CreateOrderRequest{
		AmountPaise: charge * 100,
		Currency:    order.DefaultCurrency,
		Receipt:     receipt,
	})
	if err != nil {
		s.logger.Error("checkout order creation failed",
			"error", err,
			"product_type", req.ProductType,
			"tenure", req.Tenure)
		return nil, err
	}

	session := &Session{
		CheckoutID:    uuid.NewString(),
		OrderID:       gatewayOrder.ID,
		Receipt:       receipt,
		State:         StateAwaitingConfirmation,
		Form:          req.FormSnapshot,
		ProductType:   plan.Product.ID,
		Tenure:        plan.Tenure.ID,
		TenureMonths:  plan.Tenure.Months,
		Quote:         quote,
		PaymentOption: option,
		ChargeAmount:  charge,
	}
	s.sessions.Put(session)

	s.logger.Info("checkout started",
		"checkout_id", session.CheckoutID,
		"order_id", gatewayOrder.ID,
		"product_type", plan.Product.ID,
		"tenure", plan.Tenure.ID,
		"payment_option", string(option),
		"charge_amount", charge)

	return &CheckoutResponse{
		CheckoutID:    session.CheckoutID,
		OrderID:       gatewayOrder.ID,
		AmountPaise:   gatewayOrder.AmountPaise,
		Currency:      gatewayOrder.Currency,
		KeyID:         s.gatewayConfig.KeyID,
		DisplayName:   s.gatewayConfig.DisplayName,
		Description:   plan.Product.Name + " Subscription",
		PaymentOption: string(option),
		ChargeAmount:  charge,
		BalanceDue:    pricing.RemainingAfter(quote.Total, charge),
		Quote:         quote,
		Prefill: Prefill{
			Name:    req.ProprietorName,
			Contact: req.PhoneNumber,
		},
	}, nil
}

// Confirm resolves a checkout session against the gateway handoff. The
// sequence is fixed: claim the session, verify the signature, cross-check
// the order amount at the gateway, then persist. Nothing is written before
// the last step.
func (s *Service) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
	if !req.Complete() {
		return nil, internal.ErrMalformedConfirmation
	}

	session, err := s.sessions.Claim(req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}
	ctx = internal.ContextWithCheckoutID(ctx, session.CheckoutID)

	result := s.verifier.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if !result.Valid {
		s.sessions.Fail(req.RazorpayOrderID, "signature mismatch")
		s.logger.Warn("payment signature rejected",
			"checkout_id", session.CheckoutID,
			"order_id", req.RazorpayOrderID,
			"payment_id", req.RazorpayPaymentID)
		s.eventBus.Publish(ctx, events.NewCheckoutFailedEvent(session.CheckoutID, req.RazorpayOrderID, "verification", "signature mismatch"))
		return nil, internal.ErrVerificationFailed
	}

	gatewayOrder, err := s.gateway.FetchOrder(ctx, req.RazorpayOrderID)
	if err != nil {
		s.logger.Error("order re-fetch failed during confirmation",
			"error", err,
			"checkout_id", session.CheckoutID,
			"order_id", req.RazorpayOrderID)
		if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeGatewayUnavailable {
			// An outage is retryable; the session goes back to awaiting so
			// the customer's next attempt is not treated as a duplicate.
			s.sessions.Reopen(req.RazorpayOrderID)
			return nil, err
		}
		// The gateway answered and refused, typically an order it does not
		// know. That confirmation can never succeed.
		s.sessions.Fail(req.RazorpayOrderID, "order re-fetch rejected")
		s.eventBus.Publish(ctx, events.NewCheckoutFailedEvent(session.CheckoutID, req.RazorpayOrderID, "amount_check", "order re-fetch rejected"))
		return nil, err
	}

	expectedPaise := session.ChargeAmount * 100
	if gatewayOrder.AmountPaise != expectedPaise {
		s.sessions.Fail(req.RazorpayOrderID, "order amount mismatch")
		s.logger.Error("order amount does not match the quoted charge",
			"checkout_id", session.CheckoutID,
			"order_id", req.RazorpayOrderID,
			"expected_paise", expectedPaise,
			"gateway_paise", gatewayOrder.AmountPaise)
		s.eventBus.Publish(ctx, events.NewCheckoutFailedEvent(session.CheckoutID, req.RazorpayOrderID, "amount_check", "order amount mismatch"))
		return nil, internal.NewVerificationError("order amount does not match the quoted charge", internal.ErrCodeAmountMismatch)
	}

	s.eventBus.Publish(ctx, events.NewPaymentVerifiedEvent(req.RazorpayOrderID, req.RazorpayPaymentID, session.ChargeAmount))

	record, err := s.billing.RecordCheckout(ctx, &billing.RecordCheckoutInput{
		RestaurantName:    session.Form.RestaurantName,
		ProprietorName:    session.Form.ProprietorName,
		Address:           session.Form.Address,
		Pincode:           session.Form.Pincode,
		GSTNumber:         session.Form.GSTNumber,
		PhoneNumber:       session.Form.PhoneNumber,
		ProductType:       session.ProductType,
		Tenure:            session.Tenure,
		TenureMonths:      session.TenureMonths,
		Amount:            session.Quote.Subtotal,
		TaxAmount:         session.Quote.GSTAmount,
		TotalAmount:       session.Quote.Total,
		AmountPaid:        session.ChargeAmount,
		IsPartial:         session.PaymentOption == pricing.PaymentOptionPartial,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		StartDate:         time.Now(),
	})
	if err != nil {
		s.sessions.Fail(req.RazorpayOrderID, "persistence failed")
		s.eventBus.Publish(ctx, events.NewCheckoutFailedEvent(session.CheckoutID, req.RazorpayOrderID, "persistence", "records not written"))
		return nil, err
	}

	s.sessions.Complete(req.RazorpayOrderID)
	s.eventBus.Publish(ctx, events.NewCheckoutCompletedEvent(
		session.CheckoutID,
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		record.CustomerID,
		record.SubscriptionID,
		record.InvoiceNumber,
		session.ChargeAmount,
		record.BalanceDue,
	))

	return &ConfirmResponse{
		Status:         "success",
		OrderID:        req.RazorpayOrderID,
		PaymentID:      req.RazorpayPaymentID,
		CustomerID:     record.CustomerID,
		SubscriptionID: record.SubscriptionID,
		InvoiceNumber:  record.InvoiceNumber,
		InvoiceStatus:  record.InvoiceStatus,
		AmountPaid:     session.ChargeAmount,
		BalanceDue:     record.BalanceDue,
	}, nil
}

// Plans renders the full catalog with server-computed quotes, the data the
// pricing page needs to render without doing its own arithmetic.
func (s *Service) Plans() PlansResponse {
	tenures := pricing.Tenures()
	views := make([]PlanView, 0, len(pricing.Products()))

	for _, product := range pricing.Products() {
		view := PlanView{
			ProductID:   product.ID,
			ProductName: product.Name,
			Tenures:     make([]PlanQuoteView, 0, len(tenures)),
		}
		for _, tenure := range tenures {
			plan, err := pricing.LookupPlan(product.ID, tenure.ID)
			if err != nil {
				continue
			}
			view.Tenures = append(view.Tenures, PlanQuoteView{
				Tenure:     tenure.ID,
				TenureName: tenure.Name,
				Months:     tenure.Months,
				Quote:      pricing.QuoteFor(plan),
			})
		}
		views = append(views, view)
	}

	return PlansResponse{Plans: views}
}
