package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Status moves freely within this set by admin action;
// there are no transition rules.
const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a placed order. Orders are immutable once their items
// are attached; only the status changes afterwards.
type Order struct {
	ID          int64           `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"user_id"`
	OrderDate   time.Time       `json:"orderDate" db:"order_date"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status      string          `json:"status" db:"status"`
}

// OrderItem is a line item in a placed order. Price is a snapshot taken
// at purchase time; later catalogue price changes do not alter it.
type OrderItem struct {
	ID       int64           `json:"-" db:"id"`
	OrderID  int64           `json:"-" db:"order_id"`
	BookID   int64           `json:"bookId" db:"book_id"`
	Quantity int             `json:"quantity" db:"quantity"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

// OrderItemDetail is an order item joined with its book title for display.
type OrderItemDetail struct {
	OrderItem
	BookTitle  string `json:"bookTitle"`
	BookAuthor string `json:"bookAuthor"`
}

// OrderDetail is an order with its items, for confirmation and admin
// display.
type OrderDetail struct {
	Order Order             `json:"order"`
	Items []OrderItemDetail `json:"items"`
}

// UpdateStatusRequest represents the request payload for an admin order
// status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Dashboard aggregates the admin landing-page figures.
type Dashboard struct {
	TotalBooks   int64   `json:"totalBooks"`
	TotalOrders  int64   `json:"totalOrders"`
	TotalUsers   int64   `json:"totalUsers"`
	RecentOrders []Order `json:"recentOrders"`
}
