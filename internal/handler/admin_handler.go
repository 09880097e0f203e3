package handler

import (
	"encoding/json"
	"net/http"

	"bookhaven/internal/model"
	"bookhaven/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler handles the admin back-office HTTP requests: the
// dashboard, catalogue management and order management.
type AdminHandler struct {
	admin    service.AdminService
	catalog  service.CatalogService
	checkout service.CheckoutService
	logger   zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, catalog service.CatalogService, checkout service.CheckoutService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		catalog:  catalog,
		checkout: checkout,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// Dashboard handles GET /api/admin/dashboard requests.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	dashboard, err := h.admin.Dashboard(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// CreateBook handles POST /api/admin/books requests.
func (h *AdminHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	var input model.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	book, err := h.catalog.Create(r.Context(), id, &input)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// UpdateBook handles PUT /api/admin/books/{id} requests.
func (h *AdminHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	bookID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid book ID", h.logger)
		return
	}

	var input model.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	book, err := h.catalog.Update(r.Context(), id, bookID, &input)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// DeleteBook handles DELETE /api/admin/books/{id} requests.
func (h *AdminHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	bookID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid book ID", h.logger)
		return
	}

	if err := h.catalog.Delete(r.Context(), id, bookID); err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/admin/orders requests.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.admin.ListOrders(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// OrderDetail handles GET /api/admin/orders/{id} requests.
func (h *AdminHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID", h.logger)
		return
	}

	detail, err := h.admin.OrderDetail(r.Context(), id, orderID)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}/status requests.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID", h.logger)
		return
	}

	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.checkout.UpdateOrderStatus(r.Context(), id, orderID, req.Status); err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info().
		Int64("order_id", orderID).
		Str("status", req.Status).
		Msg("order status updated")

	w.WriteHeader(http.StatusNoContent)
}
