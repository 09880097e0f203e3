package repository

import (
	"context"
	"fmt"

	"bookhaven/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bookRepository implements the BookRepository interface using PostgreSQL.
type bookRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool *pgxpool.Pool, logger zerolog.Logger) BookRepository {
	return &bookRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "book").Logger(),
	}
}

const bookColumns = "id, title, author, price, genre, stock_quantity, description, created_at"

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Genre, &b.StockQuantity, &b.Description, &b.CreatedAt)
}

// List retrieves all books with pagination support.
func (r *bookRepository) List(ctx context.Context, limit, offset int) ([]model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		ORDER BY title
		LIMIT $1 OFFSET $2
	`, bookColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query books")
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows, r.logger)
}

// ListRecent retrieves the most recently added books.
func (r *bookRepository) ListRecent(ctx context.Context, limit int) ([]model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		ORDER BY created_at DESC
		LIMIT $1
	`, bookColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query recent books")
		return nil, fmt.Errorf("failed to query recent books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows, r.logger)
}

// GetByID retrieves a single book by its ID.
func (r *bookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE id = $1
	`, bookColumns)

	var b model.Book
	err := scanBook(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("book_id", id).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("book_id", id).Msg("failed to query book")
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return &b, nil
}

// Create inserts a new book and returns it with its assigned ID.
func (r *bookRepository) Create(ctx context.Context, input *model.BookInput) (*model.Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO books (title, author, price, genre, stock_quantity, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, bookColumns)

	var b model.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		input.Title, input.Author, input.Price, input.Genre, input.StockQuantity, input.Description), &b)
	if err != nil {
		r.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.logger.Debug().Int64("book_id", b.ID).Str("title", b.Title).Msg("book created successfully")

	return &b, nil
}

// Update overwrites a book's attributes.
func (r *bookRepository) Update(ctx context.Context, id int64, input *model.BookInput) (*model.Book, error) {
	query := fmt.Sprintf(`
		UPDATE books
		SET title = $2, author = $3, price = $4, genre = $5, stock_quantity = $6, description = $7
		WHERE id = $1
		RETURNING %s
	`, bookColumns)

	var b model.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		id, input.Title, input.Author, input.Price, input.Genre, input.StockQuantity, input.Description), &b)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("book_id", id).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("book_id", id).Msg("failed to update book")
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return &b, nil
}

// Delete removes a book.
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("book_id", id).Msg("failed to delete book")
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("book_id", id).Msg("book not found")
		return model.ErrNotFound
	}

	return nil
}

// Count returns the number of books in the catalogue.
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count books")
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// DecrementStock subtracts quantity from a book's stock within the
// provided transaction. The WHERE clause makes the decrement conditional
// so stock can never go negative, even under concurrent checkouts; the
// row lock taken by the UPDATE serialises competing decrements.
func (r *bookRepository) DecrementStock(ctx context.Context, tx pgx.Tx, bookID int64, quantity int) error {
	query := `
		UPDATE books
		SET stock_quantity = stock_quantity - $1
		WHERE id = $2 AND stock_quantity >= $1
	`

	tag, err := tx.Exec(ctx, query, quantity, bookID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("book_id", bookID).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Int64("book_id", bookID).
			Int("quantity", quantity).
			Msg("insufficient stock for decrement")
		return model.ErrInsufficientStock
	}

	return nil
}

// collectBooks drains rows into a slice of books.
func collectBooks(rows pgx.Rows, logger zerolog.Logger) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			logger.Error().Err(err).Msg("failed to scan book row")
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating book rows")
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}
