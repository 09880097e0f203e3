package repository

import (
	"context"
	"fmt"

	"bookhaven/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetLine retrieves the cart line for a (user, book) pair.
func (r *cartRepository) GetLine(ctx context.Context, userID, bookID int64) (*model.CartLine, error) {
	query := `
		SELECT id, user_id, book_id, quantity
		FROM shopping_cart
		WHERE user_id = $1 AND book_id = $2
	`

	var line model.CartLine
	err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&line.ID, &line.UserID, &line.BookID, &line.Quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Int64("user_id", userID).
			Int64("book_id", bookID).
			Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	return &line, nil
}

// GetLineByID retrieves a cart line by its ID.
func (r *cartRepository) GetLineByID(ctx context.Context, id int64) (*model.CartLine, error) {
	query := `
		SELECT id, user_id, book_id, quantity
		FROM shopping_cart
		WHERE id = $1
	`

	var line model.CartLine
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&line.ID, &line.UserID, &line.BookID, &line.Quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("cart_line_id", id).Msg("cart line not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_line_id", id).Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	return &line, nil
}

// Insert creates a new cart line and returns it with its assigned ID.
func (r *cartRepository) Insert(ctx context.Context, line *model.CartLine) (*model.CartLine, error) {
	query := `
		INSERT INTO shopping_cart (user_id, book_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, book_id, quantity
	`

	var created model.CartLine
	err := r.pool.QueryRow(ctx, query, line.UserID, line.BookID, line.Quantity).Scan(
		&created.ID, &created.UserID, &created.BookID, &created.Quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("user_id", line.UserID).
			Int64("book_id", line.BookID).
			Msg("failed to insert cart line")
		return nil, fmt.Errorf("failed to insert cart line: %w", err)
	}

	r.logger.Debug().
		Int64("cart_line_id", created.ID).
		Int64("user_id", created.UserID).
		Msg("cart line created successfully")

	return &created, nil
}

// UpdateQuantity sets a cart line's quantity.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE shopping_cart SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_line_id", id).Msg("failed to update cart line")
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete removes a cart line.
func (r *cartRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shopping_cart WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_line_id", id).Msg("failed to delete cart line")
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// ListByUser retrieves a user's cart lines joined with their books, in
// insertion order.
func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	query := `
		SELECT c.id, c.user_id, c.book_id, c.quantity,
		       b.id, b.title, b.author, b.price, b.genre, b.stock_quantity, b.description, b.created_at
		FROM shopping_cart c
		JOIN books b ON b.id = c.book_id
		WHERE c.user_id = $1
		ORDER BY c.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		err := rows.Scan(
			&item.Line.ID, &item.Line.UserID, &item.Line.BookID, &item.Line.Quantity,
			&item.Book.ID, &item.Book.Title, &item.Book.Author, &item.Book.Price,
			&item.Book.Genre, &item.Book.StockQuantity, &item.Book.Description, &item.Book.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart rows: %w", err)
	}

	return items, nil
}

// CountByUser returns the number of lines in a user's cart.
func (r *cartRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM shopping_cart WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count cart lines")
		return 0, fmt.Errorf("failed to count cart lines: %w", err)
	}
	return count, nil
}

// ClearUser deletes all of a user's cart lines within the provided
// transaction.
func (r *cartRepository) ClearUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM shopping_cart WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().Int64("user_id", userID).Msg("cart cleared")

	return nil
}
