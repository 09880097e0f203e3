package service

import (
	"context"
	"errors"
	"fmt"

	"bookhaven/internal/model"
	"bookhaven/internal/repository"

	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	bookRepo  repository.BookRepository
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	bookRepo repository.BookRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// Summary returns the cart as it will be charged.
func (s *checkoutService) Summary(ctx context.Context, identity model.Identity) (*model.CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout summary: %w", err)
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	return &model.CartView{Items: items, Total: cartTotal(items)}, nil
}

// Checkout atomically converts the caller's cart into an order. The
// order row, its price-snapshotted items, the stock decrements and the
// cart clearing commit or abort together; on any failure no order exists
// and the cart is untouched.
func (s *checkoutService) Checkout(ctx context.Context, identity model.Identity) (*model.OrderDetail, error) {
	items, err := s.cartRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}
	if len(items) == 0 {
		s.logger.Debug().Int64("user_id", identity.UserID).Msg("checkout attempted with empty cart")
		return nil, model.ErrEmptyCart
	}

	total := cartTotal(items)

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin checkout transaction")
		return nil, model.ErrCheckoutFailed
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	order := &model.Order{
		UserID:      identity.UserID,
		TotalAmount: total,
		Status:      model.StatusProcessing,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("user_id", identity.UserID).Msg("failed to create order")
		return nil, model.ErrCheckoutFailed
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			OrderID:  order.ID,
			BookID:   item.Book.ID,
			Quantity: item.Line.Quantity,
			Price:    item.Book.Price,
		}
	}

	if err = s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, model.ErrCheckoutFailed
	}

	// Stock re-validation happens here, inside the transaction: a
	// concurrent checkout that took the last copies makes the
	// conditional decrement fail and aborts this one.
	for _, item := range items {
		if err = s.bookRepo.DecrementStock(ctx, tx, item.Book.ID, item.Line.Quantity); err != nil {
			if errors.Is(err, model.ErrInsufficientStock) {
				s.logger.Warn().
					Int64("order_id", order.ID).
					Int64("book_id", item.Book.ID).
					Int("quantity", item.Line.Quantity).
					Msg("checkout aborted on insufficient stock")
				return nil, model.ErrInsufficientStock
			}
			s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to decrement stock")
			return nil, model.ErrCheckoutFailed
		}
	}

	if err = s.cartRepo.ClearUser(ctx, tx, identity.UserID); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to clear cart")
		return nil, model.ErrCheckoutFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit checkout transaction")
		return nil, model.ErrCheckoutFailed
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", identity.UserID).
		Str("total", total.StringFixed(2)).
		Int("item_count", len(orderItems)).
		Msg("order placed successfully")

	placed, details, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load placed order: %w", err)
	}
	if placed == nil {
		return nil, model.ErrNotFound
	}

	return &model.OrderDetail{Order: *placed, Items: details}, nil
}

// History returns the caller's placed orders, newest first.
func (s *checkoutService) History(ctx context.Context, identity model.Identity) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status. The status must be one of the
// known set; there are no transition rules beyond that.
func (s *checkoutService) UpdateOrderStatus(ctx context.Context, identity model.Identity, orderID int64, status string) error {
	if !identity.Admin {
		s.logger.Warn().
			Int64("user_id", identity.UserID).
			Int64("order_id", orderID).
			Msg("non-admin attempted order status update")
		return model.ErrUnauthorized
	}

	if !model.ValidStatus(status) {
		return model.ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Str("status", status).
		Msg("order status updated")

	return nil
}
