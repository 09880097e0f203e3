package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bookhaven/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedBooks inserts a small catalogue and returns title-to-ID mapping.
func SeedBooks(t *testing.T, pool *pgxpool.Pool) map[string]int64 {
	t.Helper()

	ctx := context.Background()

	books := []struct {
		title  string
		author string
		price  string
		stock  int
	}{
		{"Dune", "Frank Herbert", "9.99", 25},
		{"Hyperion", "Dan Simmons", "14.50", 3},
		{"Emma", "Jane Austen", "6.50", 40},
		{"The Dispossessed", "Ursula K. Le Guin", "8.75", 0},
	}

	ids := make(map[string]int64, len(books))
	for _, b := range books {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO books (title, author, price, genre, stock_quantity, description)
			 VALUES ($1, $2, $3, '', $4, '') RETURNING id`,
			b.title, b.author, decimal.RequireFromString(b.price), b.stock,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed book %s: %v", b.title, err)
		}
		ids[b.title] = id
	}

	return ids
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "shopping_cart", "books", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// PromoteToAdmin flips a user's admin flag directly in the database.
// Admin accounts are only created out of band.
func PromoteToAdmin(t *testing.T, pool *pgxpool.Pool, email string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE users SET is_admin = TRUE WHERE email = $1`, email)
	if err != nil {
		t.Fatalf("failed to promote %s to admin: %v", email, err)
	}
}

// StockOf reads a book's current stock directly.
func StockOf(t *testing.T, pool *pgxpool.Pool, bookID int64) int {
	t.Helper()

	var stock int
	err := pool.QueryRow(context.Background(),
		`SELECT stock_quantity FROM books WHERE id = $1`, bookID).Scan(&stock)
	if err != nil {
		t.Fatalf("failed to read stock: %v", err)
	}
	return stock
}
