package service

import (
	"context"

	"bookhaven/internal/model"
)

// CatalogService defines operations for catalogue browsing and admin
// catalogue management.
type CatalogService interface {
	// List retrieves all books with pagination.
	List(ctx context.Context, limit, offset int) ([]model.Book, error)

	// GetByID retrieves a single book by ID.
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// Featured retrieves the most recently added books for the home page.
	Featured(ctx context.Context) ([]model.Book, error)

	// Create adds a new book to the catalogue. Admin only.
	Create(ctx context.Context, identity model.Identity, input *model.BookInput) (*model.Book, error)

	// Update overwrites a book's attributes. Admin only.
	Update(ctx context.Context, identity model.Identity, id int64, input *model.BookInput) (*model.Book, error)

	// Delete removes a book from the catalogue. Admin only.
	Delete(ctx context.Context, identity model.Identity, id int64) error
}

// CartService defines operations on a user's shopping cart.
type CartService interface {
	// AddToCart adds quantity of a book to the caller's cart, merging
	// into an existing line for the same book.
	AddToCart(ctx context.Context, identity model.Identity, bookID int64, quantity int) (*model.CartLine, error)

	// UpdateLine sets a cart line's quantity. A quantity of zero or less
	// removes the line. Stock is not re-checked here; checkout re-validates.
	UpdateLine(ctx context.Context, identity model.Identity, lineID int64, quantity int) error

	// RemoveLine deletes a cart line unconditionally.
	RemoveLine(ctx context.Context, identity model.Identity, lineID int64) error

	// ViewCart returns the caller's cart lines with their books and the
	// computed total.
	ViewCart(ctx context.Context, identity model.Identity) (*model.CartView, error)

	// Count returns the number of lines in the caller's cart.
	Count(ctx context.Context, identity model.Identity) (int64, error)
}

// CheckoutService defines the conversion of a cart into a placed order,
// and admin order management.
type CheckoutService interface {
	// Summary returns the cart as it will be charged, for the
	// confirmation page.
	Summary(ctx context.Context, identity model.Identity) (*model.CartView, error)

	// Checkout atomically converts the caller's cart into an order:
	// order and item rows are created, stock is decremented and the cart
	// is cleared in a single transaction.
	Checkout(ctx context.Context, identity model.Identity) (*model.OrderDetail, error)

	// History returns the caller's placed orders, newest first.
	History(ctx context.Context, identity model.Identity) ([]model.Order, error)

	// UpdateOrderStatus sets an order's status. Admin only.
	UpdateOrderStatus(ctx context.Context, identity model.Identity, orderID int64, status string) error
}

// UserService defines account registration and authentication.
type UserService interface {
	// Register creates a new account.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AdminService defines the admin back-office read operations.
type AdminService interface {
	// Dashboard returns catalogue, order and user counts plus the most
	// recent orders.
	Dashboard(ctx context.Context, identity model.Identity) (*model.Dashboard, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context, identity model.Identity) ([]model.Order, error)

	// OrderDetail retrieves one order with its items.
	OrderDetail(ctx context.Context, identity model.Identity, orderID int64) (*model.OrderDetail, error)
}
