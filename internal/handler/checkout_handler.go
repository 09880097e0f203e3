package handler

import (
	"net/http"

	"bookhaven/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles order placement HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Summary handles GET /api/checkout requests, returning the cart as it
// will be charged.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Summary(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// History handles GET /api/orders requests, listing the caller's placed
// orders.
func (h *CheckoutHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.History(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Process handles POST /api/checkout requests, converting the caller's
// cart into a placed order.
func (h *CheckoutHandler) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.service.Checkout(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Int64("order_id", order.Order.ID).
		Int64("user_id", id.UserID).
		Str("total", order.Order.TotalAmount.String()).
		Msg("order placed")

	writeJSON(w, http.StatusCreated, order)
}
