package repository

import (
	"context"
	"testing"
	"time"

	"bookhaven/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedBook inserts one book and returns its assigned ID.
func seedBook(t *testing.T, pool *pgxpool.Pool, title, author, price string, stock int) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO books (title, author, price, genre, stock_quantity, description)
		 VALUES ($1, $2, $3, '', $4, '') RETURNING id`,
		title, author, decimal.RequireFromString(price), stock,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedUser inserts one user and returns its assigned ID.
func seedUser(t *testing.T, pool *pgxpool.Pool, name, email string) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		name, email,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedCartLine inserts one cart line and returns its assigned ID.
func seedCartLine(t *testing.T, pool *pgxpool.Pool, userID, bookID int64, quantity int) int64 {
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO shopping_cart (user_id, book_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
		userID, bookID, quantity,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// stockOf reads a book's current stock directly.
func stockOf(t *testing.T, pool *pgxpool.Pool, bookID int64) int {
	var stock int
	err := pool.QueryRow(context.Background(),
		`SELECT stock_quantity FROM books WHERE id = $1`, bookID).Scan(&stock)
	require.NoError(t, err)
	return stock
}
