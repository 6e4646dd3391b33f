package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	errors "github.com/sparkserves/subscription-checkout/internal"
)

// Order mirrors the gateway-side record authorizing collection of a specific
// amount. Amount is in paise. Orders are immutable once created and are only
// ever referenced by ID afterwards.
type Order struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

type CreateOrderRequest struct {
	AmountPaise int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// Client talks to the Razorpay orders API. It holds the confidential key
// secret and must only be constructed inside the server process, never in
// anything reachable from a client code path.
type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    config.BaseURL,
		keyID:      config.KeyID,
		keySecret:  config.KeySecret,
		logger:     logger,
	}
}

// CreateOrder asks the gateway to create an order for the given amount.
// A transport failure maps to GATEWAY_UNAVAILABLE, a non-2xx reply to
// GATEWAY_REJECTED carrying the remote error body. On either, the caller
// must not proceed to collect a payment confirmation.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	c.logger.Info("creating gateway order",
		"amount_paise", req.AmountPaise,
		"currency", req.Currency,
		"receipt", req.Receipt)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway order request failed", "error", err, "receipt", req.Receipt)
		return nil, errors.NewGatewayUnavailableError("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewGatewayUnavailableError("failed to read gateway response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("gateway rejected order creation",
			"status", resp.StatusCode,
			"receipt", req.Receipt)
		return nil, errors.NewGatewayRejectedError(
			fmt.Sprintf("gateway rejected order creation with status %d", resp.StatusCode),
			json.RawMessage(respBody))
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, errors.NewGatewayUnavailableError("failed to decode gateway order", err)
	}

	c.logger.Info("gateway order created",
		"order_id", order.ID,
		"amount_paise", order.AmountPaise,
		"currency", order.Currency)

	return &order, nil
}

// FetchOrder reads an order back from the gateway. The checkout flow uses
// this after signature verification to compare the gateway-held amount
// against the amount the session expected, so a confirmation for a tampered
// order never reaches persistence.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	url := fmt.Sprintf("%s/v1/orders/%s", c.baseURL, orderID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway order fetch failed", "error", err, "order_id", orderID)
		return nil, errors.NewGatewayUnavailableError("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewGatewayUnavailableError("failed to read gateway response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewGatewayRejectedError(
			fmt.Sprintf("gateway order fetch returned status %d", resp.StatusCode),
			json.RawMessage(respBody))
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, errors.NewGatewayUnavailableError("failed to decode gateway order", err)
	}

	return &order, nil
}
