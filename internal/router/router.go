package router

import (
	"net/http"

	"bookhaven/internal/auth"
	"bookhaven/internal/handler"
	"bookhaven/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Catalogue browsing and auth routes are public; cart, checkout and
// admin routes require a bearer token.
func New(
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	adminHandler *handler.AdminHandler,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/books", bookHandler.List)
	mux.HandleFunc("GET /api/books/featured", bookHandler.Featured)
	mux.HandleFunc("GET /api/books/search", bookHandler.Search)
	mux.HandleFunc("GET /api/books/{id}", bookHandler.GetByID)

	// Authenticated routes
	authed := http.NewServeMux()
	authed.HandleFunc("GET /api/me", authHandler.Me)
	authed.HandleFunc("GET /api/cart", cartHandler.View)
	authed.HandleFunc("GET /api/cart/count", cartHandler.Count)
	authed.HandleFunc("POST /api/cart/items", cartHandler.Add)
	authed.HandleFunc("PUT /api/cart/items/{id}", cartHandler.Update)
	authed.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.Remove)
	authed.HandleFunc("GET /api/checkout", checkoutHandler.Summary)
	authed.HandleFunc("POST /api/checkout", checkoutHandler.Process)
	authed.HandleFunc("GET /api/orders", checkoutHandler.History)
	authed.HandleFunc("GET /api/admin/dashboard", adminHandler.Dashboard)
	authed.HandleFunc("POST /api/admin/books", adminHandler.CreateBook)
	authed.HandleFunc("PUT /api/admin/books/{id}", adminHandler.UpdateBook)
	authed.HandleFunc("DELETE /api/admin/books/{id}", adminHandler.DeleteBook)
	authed.HandleFunc("GET /api/admin/orders", adminHandler.ListOrders)
	authed.HandleFunc("GET /api/admin/orders/{id}", adminHandler.OrderDetail)
	authed.HandleFunc("PUT /api/admin/orders/{id}/status", adminHandler.UpdateOrderStatus)

	requireAuth := middleware.RequireAuth(tokens, logger)
	mux.Handle("/api/me", requireAuth(authed))
	mux.Handle("/api/cart", requireAuth(authed))
	mux.Handle("/api/cart/", requireAuth(authed))
	mux.Handle("/api/checkout", requireAuth(authed))
	mux.Handle("/api/orders", requireAuth(authed))
	mux.Handle("/api/admin/", requireAuth(authed))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
