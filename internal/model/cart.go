package model

import "github.com/shopspring/decimal"

// CartLine is one user's requested quantity of one book, prior to order
// placement. A (user, book) pair has at most one line; adding the same
// book again merges into the existing line.
type CartLine struct {
	ID       int64 `json:"id" db:"id"`
	UserID   int64 `json:"userId" db:"user_id"`
	BookID   int64 `json:"bookId" db:"book_id"`
	Quantity int   `json:"quantity" db:"quantity"`
}

// CartItem pairs a cart line with its book for display.
type CartItem struct {
	Line CartLine `json:"line"`
	Book Book     `json:"book"`
}

// Subtotal returns price times quantity for this item at current
// catalogue prices.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Book.Price.Mul(decimal.NewFromInt(int64(ci.Line.Quantity)))
}

// CartView is the cart as presented to the user: all items plus the
// computed total.
type CartView struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddToCartRequest represents the request payload for adding a book to
// the cart.
type AddToCartRequest struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

// UpdateCartRequest represents the request payload for changing a cart
// line's quantity. A quantity of zero or less removes the line.
type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}
