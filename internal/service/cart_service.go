package service

import (
	"context"
	"fmt"

	"bookhaven/internal/model"
	"bookhaven/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	bookRepo repository.BookRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart adds quantity of a book to the caller's cart. An existing
// line for the same book absorbs the new quantity.
func (s *cartService) AddToCart(ctx context.Context, identity model.Identity, bookID int64, quantity int) (*model.CartLine, error) {
	if quantity < 1 {
		s.logger.Warn().
			Int64("user_id", identity.UserID).
			Int64("book_id", bookID).
			Int("quantity", quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if book == nil {
		return nil, model.ErrNotFound
	}

	if book.StockQuantity < quantity {
		s.logger.Warn().
			Int64("book_id", bookID).
			Int("requested", quantity).
			Int("available", book.StockQuantity).
			Msg("insufficient stock for add to cart")
		return nil, model.ErrInsufficientStock
	}

	existing, err := s.cartRepo.GetLine(ctx, identity.UserID, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	if existing != nil {
		merged := existing.Quantity + quantity
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, merged); err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
		existing.Quantity = merged

		s.logger.Debug().
			Int64("cart_line_id", existing.ID).
			Int("quantity", merged).
			Msg("merged quantity into existing cart line")

		return existing, nil
	}

	line, err := s.cartRepo.Insert(ctx, &model.CartLine{
		UserID:   identity.UserID,
		BookID:   bookID,
		Quantity: quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Int64("user_id", identity.UserID).
		Int64("book_id", bookID).
		Int("quantity", quantity).
		Msg("book added to cart")

	return line, nil
}

// UpdateLine sets a cart line's quantity; zero or less removes the line.
func (s *cartService) UpdateLine(ctx context.Context, identity model.Identity, lineID int64, quantity int) error {
	line, err := s.ownedLine(ctx, identity, lineID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, line.ID); err != nil {
			return fmt.Errorf("failed to remove cart line: %w", err)
		}
		s.logger.Debug().Int64("cart_line_id", line.ID).Msg("cart line removed by zero quantity")
		return nil
	}

	if err := s.cartRepo.UpdateQuantity(ctx, line.ID, quantity); err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	return nil
}

// RemoveLine deletes a cart line unconditionally.
func (s *cartService) RemoveLine(ctx context.Context, identity model.Identity, lineID int64) error {
	line, err := s.ownedLine(ctx, identity, lineID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.Delete(ctx, line.ID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	s.logger.Debug().Int64("cart_line_id", line.ID).Msg("cart line removed")

	return nil
}

// ViewCart returns the caller's cart with the computed total.
func (s *cartService) ViewCart(ctx context.Context, identity model.Identity) (*model.CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to view cart: %w", err)
	}

	return &model.CartView{Items: items, Total: cartTotal(items)}, nil
}

// Count returns the number of lines in the caller's cart.
func (s *cartService) Count(ctx context.Context, identity model.Identity) (int64, error) {
	count, err := s.cartRepo.CountByUser(ctx, identity.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart lines: %w", err)
	}
	return count, nil
}

// ownedLine loads a cart line and verifies it belongs to the caller.
// Lines owned by other users are reported as not found rather than
// forbidden, so line IDs cannot be probed.
func (s *cartService) ownedLine(ctx context.Context, identity model.Identity, lineID int64) (*model.CartLine, error) {
	line, err := s.cartRepo.GetLineByID(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}
	if line == nil || line.UserID != identity.UserID {
		return nil, model.ErrNotFound
	}
	return line, nil
}

// cartTotal sums price times quantity across the cart at current
// catalogue prices.
func cartTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
