package order

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service *Service
	logger  *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		service:     service,
		logger:      logger,
	}
}

// CreateOrder handles POST /api/v1/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("CreateOrder: invalid request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	gatewayOrder, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		h.logger.Error("CreateOrder: service error", "error", err, "receipt", req.Receipt)
		if appErr, ok := errors.IsAppError(err); ok && appErr.Type == errors.ErrorTypeGateway {
			// the order endpoint contract reports upstream failure as a
			// 500-class {error} body
			h.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": appErr.GetDetailedMessage()})
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CreateOrderResponse{
		ID:       gatewayOrder.ID,
		Amount:   gatewayOrder.AmountPaise,
		Currency: gatewayOrder.Currency,
	})
}
