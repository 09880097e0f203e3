package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhaven/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var adminIdentity = model.Identity{UserID: 2, Admin: true}

func newAdminHandler(admin *MockAdminService, catalog *MockCatalogService, checkout *MockCheckoutService) *AdminHandler {
	return NewAdminHandler(admin, catalog, checkout, zerolog.Nop())
}

func TestAdminHandler_Dashboard(t *testing.T) {
	tests := []struct {
		name           string
		identity       model.Identity
		mockReturn     *model.Dashboard
		mockError      error
		expectedStatus int
	}{
		{
			name:     "Success",
			identity: adminIdentity,
			mockReturn: &model.Dashboard{
				TotalBooks:  12,
				TotalOrders: 34,
				TotalUsers:  5,
				RecentOrders: []model.Order{
					{ID: 500, TotalAmount: decimal.RequireFromString("34.48"), Status: model.StatusProcessing},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Non-admin",
			identity:       cartIdentity,
			mockError:      model.ErrUnauthorized,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAdmin := new(MockAdminService)
			h := newAdminHandler(mockAdmin, new(MockCatalogService), new(MockCheckoutService))

			mockAdmin.On("Dashboard", mock.Anything, tt.identity).Return(tt.mockReturn, tt.mockError)

			w := httptest.NewRecorder()
			h.Dashboard(w, authedRequest(http.MethodGet, "/api/admin/dashboard", nil, tt.identity))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var got model.Dashboard
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, int64(12), got.TotalBooks)
				assert.Len(t, got.RecentOrders, 1)
			}

			mockAdmin.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_CreateBook(t *testing.T) {
	created := testBook(7, "Dune", "9.99")

	tests := []struct {
		name           string
		requestBody    interface{}
		identity       model.Identity
		mockReturn     *model.Book
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			requestBody:    &model.BookInput{Title: "Dune", Author: "Frank Herbert", Price: decimal.RequireFromString("9.99"), StockQuantity: 20},
			identity:       adminIdentity,
			mockReturn:     &created,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Non-admin",
			requestBody:    &model.BookInput{Title: "Dune", Author: "Frank Herbert"},
			identity:       cartIdentity,
			mockError:      model.ErrUnauthorized,
			expectedStatus: http.StatusForbidden,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "nope",
			identity:       adminIdentity,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(MockCatalogService)
			h := newAdminHandler(new(MockAdminService), mockCatalog, new(MockCheckoutService))

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockCatalog.On("Create", mock.Anything, tt.identity, mock.AnythingOfType("*model.BookInput")).
					Return(tt.mockReturn, tt.mockError)
			}

			w := httptest.NewRecorder()
			h.CreateBook(w, authedRequest(http.MethodPost, "/api/admin/books", bytes.NewBuffer(body), tt.identity))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockCatalog.AssertExpectations(t)
			}
		})
	}
}

func TestAdminHandler_UpdateBook(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	h := newAdminHandler(new(MockAdminService), mockCatalog, new(MockCheckoutService))

	updated := testBook(7, "Dune (Revised)", "11.99")
	mockCatalog.On("Update", mock.Anything, adminIdentity, int64(7), mock.AnythingOfType("*model.BookInput")).
		Return(&updated, nil)

	body, err := json.Marshal(&model.BookInput{Title: "Dune (Revised)", Author: "Frank Herbert", Price: decimal.RequireFromString("11.99")})
	require.NoError(t, err)

	req := authedRequest(http.MethodPut, "/api/admin/books/7", bytes.NewBuffer(body), adminIdentity)
	req.SetPathValue("id", "7")
	w := httptest.NewRecorder()

	h.UpdateBook(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Dune (Revised)", got.Title)
	mockCatalog.AssertExpectations(t)
}

func TestAdminHandler_DeleteBook(t *testing.T) {
	tests := []struct {
		name           string
		bookID         string
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			bookID:         "7",
			expectedStatus: http.StatusNoContent,
			expectService:  true,
		},
		{
			name:           "Not found",
			bookID:         "99",
			mockError:      model.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Non-numeric ID",
			bookID:         "x",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(MockCatalogService)
			h := newAdminHandler(new(MockAdminService), mockCatalog, new(MockCheckoutService))

			if tt.expectService {
				mockCatalog.On("Delete", mock.Anything, adminIdentity, mock.AnythingOfType("int64")).
					Return(tt.mockError)
			}

			req := authedRequest(http.MethodDelete, "/api/admin/books/"+tt.bookID, nil, adminIdentity)
			req.SetPathValue("id", tt.bookID)
			w := httptest.NewRecorder()

			h.DeleteBook(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockCatalog.AssertExpectations(t)
			}
		})
	}
}

func TestAdminHandler_ListOrders(t *testing.T) {
	mockAdmin := new(MockAdminService)
	h := newAdminHandler(mockAdmin, new(MockCatalogService), new(MockCheckoutService))

	orders := []model.Order{
		{ID: 501, Status: model.StatusShipped},
		{ID: 500, Status: model.StatusProcessing},
	}
	mockAdmin.On("ListOrders", mock.Anything, adminIdentity).Return(orders, nil)

	w := httptest.NewRecorder()
	h.ListOrders(w, authedRequest(http.MethodGet, "/api/admin/orders", nil, adminIdentity))

	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, int64(501), got[0].ID)
	mockAdmin.AssertExpectations(t)
}

func TestAdminHandler_OrderDetail(t *testing.T) {
	mockAdmin := new(MockAdminService)
	h := newAdminHandler(mockAdmin, new(MockCatalogService), new(MockCheckoutService))

	detail := &model.OrderDetail{
		Order: model.Order{ID: 500, UserID: 1, TotalAmount: decimal.RequireFromString("34.48")},
		Items: []model.OrderItemDetail{
			{OrderItem: model.OrderItem{BookID: 7, Quantity: 2, Price: decimal.RequireFromString("9.99")}, BookTitle: "Dune"},
		},
	}
	mockAdmin.On("OrderDetail", mock.Anything, adminIdentity, int64(500)).Return(detail, nil)

	req := authedRequest(http.MethodGet, "/api/admin/orders/500", nil, adminIdentity)
	req.SetPathValue("id", "500")
	w := httptest.NewRecorder()

	h.OrderDetail(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.OrderDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Dune", got.Items[0].BookTitle)
	mockAdmin.AssertExpectations(t)
}

func TestAdminHandler_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			status:         model.StatusShipped,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Unknown status",
			status:         "Teleported",
			mockError:      model.ErrInvalidStatus,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Order not found",
			status:         model.StatusDelivered,
			mockError:      model.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Non-admin",
			status:         model.StatusShipped,
			mockError:      model.ErrUnauthorized,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCheckout := new(MockCheckoutService)
			h := newAdminHandler(new(MockAdminService), new(MockCatalogService), mockCheckout)

			mockCheckout.On("UpdateOrderStatus", mock.Anything, adminIdentity, int64(500), tt.status).
				Return(tt.mockError)

			body, err := json.Marshal(&model.UpdateStatusRequest{Status: tt.status})
			require.NoError(t, err)

			req := authedRequest(http.MethodPut, "/api/admin/orders/500/status", bytes.NewBuffer(body), adminIdentity)
			req.SetPathValue("id", "500")
			w := httptest.NewRecorder()

			h.UpdateOrderStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockCheckout.AssertExpectations(t)
		})
	}
}
