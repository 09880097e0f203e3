package repository

import (
	"context"

	"bookhaven/internal/model"

	"github.com/jackc/pgx/v5"
)

// BookRepository defines the interface for catalogue data access operations.
type BookRepository interface {
	// List retrieves all books with pagination support.
	List(ctx context.Context, limit, offset int) ([]model.Book, error)

	// GetByID retrieves a single book by its ID. Returns (nil, nil) when
	// no such book exists.
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// ListRecent retrieves the most recently added books.
	ListRecent(ctx context.Context, limit int) ([]model.Book, error)

	// Create inserts a new book and returns it with its assigned ID.
	Create(ctx context.Context, input *model.BookInput) (*model.Book, error)

	// Update overwrites a book's attributes.
	Update(ctx context.Context, id int64, input *model.BookInput) (*model.Book, error)

	// Delete removes a book.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of books in the catalogue.
	Count(ctx context.Context) (int64, error)

	// DecrementStock subtracts quantity from a book's stock within the
	// provided transaction. The update is conditional on sufficient stock;
	// ErrInsufficientStock is returned when it would go negative.
	DecrementStock(ctx context.Context, tx pgx.Tx, bookID int64, quantity int) error
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateEmail when the email
	// is already registered.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}

// CartRepository defines the interface for shopping cart data access
// operations.
type CartRepository interface {
	// GetLine retrieves the cart line for a (user, book) pair. Returns
	// (nil, nil) when the pair has no line.
	GetLine(ctx context.Context, userID, bookID int64) (*model.CartLine, error)

	// GetLineByID retrieves a cart line by its ID. Returns (nil, nil)
	// when no such line exists.
	GetLineByID(ctx context.Context, id int64) (*model.CartLine, error)

	// Insert creates a new cart line and returns it with its assigned ID.
	Insert(ctx context.Context, line *model.CartLine) (*model.CartLine, error)

	// UpdateQuantity sets a cart line's quantity.
	UpdateQuantity(ctx context.Context, id int64, quantity int) error

	// Delete removes a cart line.
	Delete(ctx context.Context, id int64) error

	// ListByUser retrieves a user's cart lines joined with their books,
	// in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)

	// CountByUser returns the number of lines in a user's cart.
	CountByUser(ctx context.Context, userID int64) (int64, error)

	// ClearUser deletes all of a user's cart lines within the provided
	// transaction.
	ClearUser(ctx context.Context, tx pgx.Tx, userID int64) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in its assigned ID and order date.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts multiple order items within the provided
	// transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items joined
	// with book titles. Returns (nil, nil, nil) when no such order exists.
	GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderItemDetail, error)

	// ListAll retrieves all orders, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// ListRecent retrieves the most recently placed orders.
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)

	// Count returns the number of placed orders.
	Count(ctx context.Context) (int64, error)

	// UpdateStatus sets an order's status. Returns ErrNotFound when the
	// order does not exist.
	UpdateStatus(ctx context.Context, id int64, status string) error
}
