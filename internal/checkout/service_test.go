package checkout_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/billing"
	"github.com/sparkserves/subscription-checkout/internal/checkout"
	"github.com/sparkserves/subscription-checkout/internal/core/events"
	"github.com/sparkserves/subscription-checkout/internal/paymentgateway"
	"github.com/sparkserves/subscription-checkout/internal/verification"
)

const testSecret = "test_secret_k3y"

// Mock gateway for testing
type mockGateway struct {
	orders        map[string]*paymentgateway.Order
	createErr     error
	fetchErr      error
	fetchOverride *paymentgateway.Order
	nextID        int
}

func newMockGateway() *mockGateway {
	return &mockGateway{orders: make(map[string]*paymentgateway.Order)}
}

func (m *mockGateway) CreateOrder(ctx context.Context, req paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	gatewayOrder := &paymentgateway.Order{
		ID:          fmt.Sprintf("order_T%d", m.nextID),
		AmountPaise: req.AmountPaise,
		Currency:    req.Currency,
		Receipt:     req.Receipt,
		Status:      "created",
	}
	m.orders[gatewayOrder.ID] = gatewayOrder
	return gatewayOrder, nil
}

func (m *mockGateway) FetchOrder(ctx context.Context, orderID string) (*paymentgateway.Order, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.fetchOverride != nil {
		return m.fetchOverride, nil
	}
	gatewayOrder, ok := m.orders[orderID]
	if !ok {
		return nil, internal.NewGatewayRejectedError("order not found", nil)
	}
	return gatewayOrder, nil
}

// Mock billing service for testing
type mockBilling struct {
	inputs []*billing.RecordCheckoutInput
	result *billing.RecordCheckoutResult
	err    error
}

func (m *mockBilling) RecordCheckout(ctx context.Context, input *billing.RecordCheckoutInput) (*billing.RecordCheckoutResult, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

var _ = Describe("Service", func() {
	var (
		service        *checkout.Service
		sessions       *checkout.SessionStore
		gateway        *mockGateway
		billingService *mockBilling
		verifier       *verification.Verifier
	)

	newRequest := func() *checkout.CheckoutRequest {
		return &checkout.CheckoutRequest{
			FormSnapshot: checkout.FormSnapshot{
				RestaurantName: "Annapurna Bhavan",
				ProprietorName: "S. Iyer",
				Address:        "14 MG Road, Kochi",
				Pincode:        "682016",
				PhoneNumber:    "9876543210",
			},
			ProductType:   "dine-flow",
			Tenure:        "quarterly",
			PaymentOption: "full",
		}
	}

	startCheckout := func(req *checkout.CheckoutRequest) *checkout.CheckoutResponse {
		response, err := service.StartCheckout(context.Background(), req)
		Expect(err).ToNot(HaveOccurred())
		return response
	}

	confirmRequest := func(orderID string) *checkout.ConfirmRequest {
		paymentID := "pay_T1"
		return &checkout.ConfirmRequest{
			RazorpayOrderID:   orderID,
			RazorpayPaymentID: paymentID,
			RazorpaySignature: verifier.Sign(orderID, paymentID),
		}
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		sessions = checkout.NewSessionStore()
		gateway = newMockGateway()
		verifier = verification.NewVerifier(testSecret)
		billingService = &mockBilling{
			result: &billing.RecordCheckoutResult{
				CustomerID:     1,
				SubscriptionID: 2,
				InvoiceID:      3,
				InvoiceNumber:  "INV-000003",
				PaymentID:      4,
				BalanceDue:     0,
				InvoiceStatus:  "paid",
			},
		}
		service = checkout.NewService(
			sessions,
			gateway,
			verifier,
			billingService,
			events.NewEventBus(logger),
			internal.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: testSecret, DisplayName: "Spark Serves"},
			logger,
		)
	})

	Describe("StartCheckout", func() {
		Context("with a full payment", func() {
			It("prices the plan server-side and orders the full total in paise", func() {
				response := startCheckout(newRequest())

				// dine-flow quarterly: 3499 base, 1750 discount, 1749 total
				Expect(response.Quote.BasePrice).To(Equal(int64(3499)))
				Expect(response.Quote.Total).To(Equal(int64(1749)))
				Expect(response.ChargeAmount).To(Equal(int64(1749)))
				Expect(response.BalanceDue).To(BeZero())
				Expect(response.AmountPaise).To(Equal(int64(174900)))
				Expect(response.Currency).To(Equal("INR"))
				Expect(response.KeyID).To(Equal("rzp_test_key"))
				Expect(response.DisplayName).To(Equal("Spark Serves"))
				Expect(response.Description).To(Equal("Dine Flow Subscription"))
				Expect(response.Prefill.Name).To(Equal("S. Iyer"))
				Expect(response.Prefill.Contact).To(Equal("9876543210"))
			})
		})

		Context("with a partial payment", func() {
			It("charges the larger half now and reports the remainder", func() {
				req := newRequest()
				req.PaymentOption = "partial"

				response := startCheckout(req)

				Expect(response.ChargeAmount).To(Equal(int64(875)))
				Expect(response.BalanceDue).To(Equal(int64(874)))
				Expect(response.AmountPaise).To(Equal(int64(87500)))
			})
		})

		Context("with an invalid form", func() {
			It("rejects before touching the gateway", func() {
				req := newRequest()
				req.Pincode = "68A016"

				response, err := service.StartCheckout(context.Background(), req)

				Expect(response).To(BeNil())
				Expect(err).To(HaveOccurred())
				Expect(gateway.orders).To(BeEmpty())
			})
		})

		Context("with an unknown product", func() {
			It("rejects the request", func() {
				req := newRequest()
				req.ProductType = "table-tamer"

				_, err := service.StartCheckout(context.Background(), req)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownProduct))
			})
		})

		Context("when the gateway is down", func() {
			It("propagates the gateway error and stores no session", func() {
				gateway.createErr = internal.NewGatewayUnavailableError("payment gateway unreachable", nil)

				_, err := service.StartCheckout(context.Background(), newRequest())

				Expect(err).To(HaveOccurred())
				Expect(sessions.Len()).To(BeZero())
			})
		})
	})

	Describe("Confirm", func() {
		It("verifies, cross-checks the amount and records the checkout", func() {
			response := startCheckout(newRequest())

			confirmation, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))

			Expect(err).ToNot(HaveOccurred())
			Expect(confirmation.Status).To(Equal("success"))
			Expect(confirmation.OrderID).To(Equal(response.OrderID))
			Expect(confirmation.InvoiceNumber).To(Equal("INV-000003"))
			Expect(confirmation.AmountPaid).To(Equal(int64(1749)))

			Expect(billingService.inputs).To(HaveLen(1))
			input := billingService.inputs[0]
			Expect(input.RestaurantName).To(Equal("Annapurna Bhavan"))
			Expect(input.ProductType).To(Equal("dine-flow"))
			Expect(input.TenureMonths).To(Equal(3))
			Expect(input.TotalAmount).To(Equal(int64(1749)))
			Expect(input.AmountPaid).To(Equal(int64(1749)))
			Expect(input.IsPartial).To(BeFalse())
			Expect(input.RazorpayOrderID).To(Equal(response.OrderID))
			Expect(input.RazorpayPaymentID).To(Equal("pay_T1"))
		})

		It("rejects a second confirmation for the same order", func() {
			response := startCheckout(newRequest())
			_, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Confirm(context.Background(), confirmRequest(response.OrderID))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateConfirmation))
			Expect(appErr.StatusCode).To(Equal(409))
			Expect(billingService.inputs).To(HaveLen(1))
		})

		It("rejects a confirmation with missing fields", func() {
			response := startCheckout(newRequest())
			req := confirmRequest(response.OrderID)
			req.RazorpaySignature = ""

			_, err := service.Confirm(context.Background(), req)

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeMalformedConfirmation))
			Expect(billingService.inputs).To(BeEmpty())
		})

		It("rejects a confirmation for an unknown order", func() {
			_, err := service.Confirm(context.Background(), confirmRequest("order_ghost"))

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeSessionNotFound))
		})

		It("fails the session on a bad signature and records nothing", func() {
			response := startCheckout(newRequest())
			req := confirmRequest(response.OrderID)
			req.RazorpaySignature = verifier.Sign("order_other", "pay_T1")

			_, err := service.Confirm(context.Background(), req)

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeVerificationFailed))
			Expect(billingService.inputs).To(BeEmpty())

			session, getErr := sessions.Get(response.OrderID)
			Expect(getErr).ToNot(HaveOccurred())
			Expect(session.State).To(Equal(checkout.StateFailed))
		})

		It("rejects when the gateway order amount differs from the quote", func() {
			response := startCheckout(newRequest())
			gateway.fetchOverride = &paymentgateway.Order{
				ID:          response.OrderID,
				AmountPaise: 100,
				Currency:    "INR",
			}

			_, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeAmountMismatch))
			Expect(billingService.inputs).To(BeEmpty())
		})

		It("fails the session when the gateway rejects the order re-fetch", func() {
			response := startCheckout(newRequest())
			gateway.fetchErr = internal.NewGatewayRejectedError("order not found", nil)

			_, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeGatewayRejected))
			Expect(billingService.inputs).To(BeEmpty())

			session, getErr := sessions.Get(response.OrderID)
			Expect(getErr).ToNot(HaveOccurred())
			Expect(session.State).To(Equal(checkout.StateFailed))

			gateway.fetchErr = nil
			_, err = service.Confirm(context.Background(), confirmRequest(response.OrderID))
			appErr, _ = internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateConfirmation))
		})

		It("reopens the session when the amount check cannot reach the gateway", func() {
			response := startCheckout(newRequest())
			gateway.fetchErr = internal.NewGatewayUnavailableError("payment gateway unreachable", nil)

			_, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeGatewayUnavailable))

			gateway.fetchErr = nil
			confirmation, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))
			Expect(err).ToNot(HaveOccurred())
			Expect(confirmation.Status).To(Equal("success"))
		})

		It("surfaces a persistence failure as payment-not-recorded", func() {
			response := startCheckout(newRequest())
			billingService.err = internal.NewPaymentNotRecordedError(fmt.Errorf("connection reset"))

			_, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodePaymentNotRecorded))

			session, getErr := sessions.Get(response.OrderID)
			Expect(getErr).ToNot(HaveOccurred())
			Expect(session.State).To(Equal(checkout.StateFailed))
		})

		It("passes partial payment data through to billing", func() {
			req := newRequest()
			req.PaymentOption = "partial"
			response := startCheckout(req)

			_, err := service.Confirm(context.Background(), confirmRequest(response.OrderID))

			Expect(err).ToNot(HaveOccurred())
			input := billingService.inputs[0]
			Expect(input.IsPartial).To(BeTrue())
			Expect(input.AmountPaid).To(Equal(int64(875)))
			Expect(input.TotalAmount).To(Equal(int64(1749)))
		})
	})

	Describe("Plans", func() {
		It("lists every product with quotes for every tenure", func() {
			plans := service.Plans()

			Expect(plans.Plans).To(HaveLen(3))
			Expect(plans.Plans[0].ProductID).To(Equal("dine-flow"))
			Expect(plans.Plans[0].Tenures).To(HaveLen(3))

			quarterly := plans.Plans[0].Tenures[0]
			Expect(quarterly.Tenure).To(Equal("quarterly"))
			Expect(quarterly.Months).To(Equal(3))
			Expect(quarterly.Quote.BasePrice).To(Equal(int64(3499)))
			Expect(quarterly.Quote.Total).To(Equal(int64(1749)))
		})
	})
})
