package service

import (
	"context"
	"fmt"

	"bookhaven/internal/model"
	"bookhaven/internal/repository"

	"github.com/rs/zerolog"
)

// featuredCount is the number of recently added books shown on the home
// page.
const featuredCount = 4

// catalogService implements CatalogService.
type catalogService struct {
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(bookRepo repository.BookRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "catalog").Logger(),
	}
}

// List retrieves all books with pagination.
func (s *catalogService) List(ctx context.Context, limit, offset int) ([]model.Book, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	books, err := s.bookRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list books")
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

// GetByID retrieves a single book by ID.
func (s *catalogService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("book_id", id).Msg("failed to get book")
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, model.ErrNotFound
	}

	return book, nil
}

// Featured retrieves the most recently added books.
func (s *catalogService) Featured(ctx context.Context) ([]model.Book, error) {
	books, err := s.bookRepo.ListRecent(ctx, featuredCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list featured books")
		return nil, fmt.Errorf("failed to list featured books: %w", err)
	}

	return books, nil
}

// Create adds a new book to the catalogue.
func (s *catalogService) Create(ctx context.Context, identity model.Identity, input *model.BookInput) (*model.Book, error) {
	if !identity.Admin {
		s.logger.Warn().Int64("user_id", identity.UserID).Msg("non-admin attempted book create")
		return nil, model.ErrUnauthorized
	}

	if err := validateBookInput(input); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.Info().Int64("book_id", book.ID).Str("title", book.Title).Msg("book created")

	return book, nil
}

// Update overwrites a book's attributes.
func (s *catalogService) Update(ctx context.Context, identity model.Identity, id int64, input *model.BookInput) (*model.Book, error) {
	if !identity.Admin {
		s.logger.Warn().Int64("user_id", identity.UserID).Msg("non-admin attempted book update")
		return nil, model.ErrUnauthorized
	}

	if err := validateBookInput(input); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.Update(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	if book == nil {
		return nil, model.ErrNotFound
	}

	s.logger.Info().Int64("book_id", book.ID).Msg("book updated")

	return book, nil
}

// Delete removes a book from the catalogue.
func (s *catalogService) Delete(ctx context.Context, identity model.Identity, id int64) error {
	if !identity.Admin {
		s.logger.Warn().Int64("user_id", identity.UserID).Msg("non-admin attempted book delete")
		return model.ErrUnauthorized
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("book_id", id).Msg("book deleted")

	return nil
}

// validateBookInput checks the fields an admin must supply.
func validateBookInput(input *model.BookInput) error {
	if input == nil {
		return fmt.Errorf("book input is nil")
	}
	if input.Title == "" {
		return fmt.Errorf("title is required")
	}
	if input.Author == "" {
		return fmt.Errorf("author is required")
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if input.StockQuantity < 0 {
		return fmt.Errorf("stock quantity cannot be negative")
	}
	return nil
}
