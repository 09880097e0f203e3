package handler

import (
	"net/http"
	"strconv"

	"bookhaven/internal/books"
	"bookhaven/internal/model"
	"bookhaven/internal/service"

	"github.com/rs/zerolog"
)

// BookHandler handles catalogue browsing and external book search.
type BookHandler struct {
	catalog  service.CatalogService
	searcher books.Searcher
	logger   zerolog.Logger
}

// NewBookHandler creates a new book handler.
func NewBookHandler(catalog service.CatalogService, searcher books.Searcher, logger zerolog.Logger) *BookHandler {
	return &BookHandler{
		catalog:  catalog,
		searcher: searcher,
		logger:   logger.With().Str("handler", "book").Logger(),
	}
}

// List handles GET /api/books requests with pagination.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		var err error
		limit, err = strconv.Atoi(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		var err error
		offset, err = strconv.Atoi(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid offset parameter", h.logger)
			return
		}
	}

	list, err := h.catalog.List(r.Context(), limit, offset)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetByID handles GET /api/books/{id} requests.
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid book ID", h.logger)
		return
	}

	book, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// Featured handles GET /api/books/featured requests.
func (h *BookHandler) Featured(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.Featured(r.Context())
	if err != nil {
		handleServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Search handles GET /api/books/search requests against the external
// volumes API. Results are display-only and never enter the catalogue.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("external search failed")
		writeError(w, r, http.StatusBadGateway, model.ErrCodeInternalError, "book search is temporarily unavailable", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
