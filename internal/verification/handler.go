package verification

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sparkserves/subscription-checkout/internal/transport"
)

// Handler exposes the standalone verification endpoint. It mirrors the
// gateway protocol exactly: 200 with status "success" on a valid signature,
// 400 on missing fields or a mismatch, 500 when the server has no secret.
type Handler struct {
	*transport.BaseHandler
	verifier *Verifier
	logger   *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, verifier *Verifier, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		verifier:    verifier,
		logger:      logger,
	}
}

// VerifyPayment handles POST /api/v1/payments/verify
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if !h.verifier.Configured() {
		h.logger.Error("VerifyPayment: no gateway secret configured")
		h.WriteJSON(w, http.StatusInternalServerError, VerifyResponse{
			Status: "failed",
			Error:  "payment verification not configured",
		})
		return
	}

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("VerifyPayment: invalid request body", "error", err)
		h.WriteJSON(w, http.StatusBadRequest, VerifyResponse{
			Status: "failed",
			Error:  "invalid request body",
		})
		return
	}

	if !req.Complete() {
		h.logger.Warn("VerifyPayment: incomplete confirmation",
			"order_id", req.RazorpayOrderID,
			"payment_id", req.RazorpayPaymentID)
		h.WriteJSON(w, http.StatusBadRequest, VerifyResponse{
			Status: "failed",
			Error:  "missing required payment verification data",
		})
		return
	}

	result := h.verifier.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)

	if !result.Valid {
		h.logger.Warn("VerifyPayment: signature mismatch",
			"order_id", req.RazorpayOrderID,
			"payment_id", req.RazorpayPaymentID)
		h.WriteJSON(w, http.StatusBadRequest, VerifyResponse{
			Status: "failed",
			Error:  "Invalid signature",
		})
		return
	}

	h.logger.Info("VerifyPayment: payment verified",
		"order_id", result.OrderID,
		"payment_id", result.PaymentID)

	h.WriteJSON(w, http.StatusOK, VerifyResponse{
		Status:    "success",
		PaymentID: result.PaymentID,
		OrderID:   result.OrderID,
	})
}
