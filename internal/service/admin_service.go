package service

import (
	"context"
	"fmt"

	"bookhaven/internal/model"
	"bookhaven/internal/repository"

	"github.com/rs/zerolog"
)

// recentOrderCount is the number of orders shown on the admin dashboard.
const recentOrderCount = 5

// adminService implements AdminService.
type adminService struct {
	bookRepo  repository.BookRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	logger    zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	bookRepo repository.BookRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger.With().Str("service", "admin").Logger(),
	}
}

// Dashboard returns catalogue, order and user counts plus the most
// recent orders.
func (s *adminService) Dashboard(ctx context.Context, identity model.Identity) (*model.Dashboard, error) {
	if !identity.Admin {
		s.logger.Warn().Int64("user_id", identity.UserID).Msg("non-admin attempted dashboard access")
		return nil, model.ErrUnauthorized
	}

	books, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	recent, err := s.orderRepo.ListRecent(ctx, recentOrderCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	return &model.Dashboard{
		TotalBooks:   books,
		TotalOrders:  orders,
		TotalUsers:   users,
		RecentOrders: recent,
	}, nil
}

// ListOrders retrieves all orders, newest first.
func (s *adminService) ListOrders(ctx context.Context, identity model.Identity) ([]model.Order, error) {
	if !identity.Admin {
		s.logger.Warn().Int64("user_id", identity.UserID).Msg("non-admin attempted order list access")
		return nil, model.ErrUnauthorized
	}

	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// OrderDetail retrieves one order with its items.
func (s *adminService) OrderDetail(ctx context.Context, identity model.Identity, orderID int64) (*model.OrderDetail, error) {
	if !identity.Admin {
		s.logger.Warn().Int64("user_id", identity.UserID).Msg("non-admin attempted order detail access")
		return nil, model.ErrUnauthorized
	}

	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNotFound
	}

	return &model.OrderDetail{Order: *order, Items: items}, nil
}
