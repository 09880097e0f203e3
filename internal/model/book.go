package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book represents a title in the catalogue.
type Book struct {
	ID            int64           `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"`
	Author        string          `json:"author" db:"author"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Genre         string          `json:"genre" db:"genre"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	Description   string          `json:"description" db:"description"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// BookInput represents the request payload for creating or updating a book.
type BookInput struct {
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Price         decimal.Decimal `json:"price"`
	Genre         string          `json:"genre"`
	StockQuantity int             `json:"stockQuantity"`
	Description   string          `json:"description"`
}

// SearchResult is one hit from the external catalogue search API.
// Results are display-only and never persisted.
type SearchResult struct {
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	ISBN          string          `json:"isbn"`
	Publisher     string          `json:"publisher"`
	PublishedDate string          `json:"publishedDate"`
}
