// Command seed populates the database with a demo catalogue and an
// admin account, for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bookhaven/internal/auth"
	"bookhaven/internal/config"
	"bookhaven/internal/database"
	"bookhaven/internal/model"
	"bookhaven/internal/repository"

	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	bookRepo := repository.NewBookRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	count, err := bookRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		logger.Info().Int64("books", count).Msg("catalogue already seeded, skipping")
		return nil
	}

	for _, b := range demoBooks() {
		book := b
		if _, err := bookRepo.Create(ctx, &book); err != nil {
			return fmt.Errorf("failed to seed book %q: %w", b.Title, err)
		}
	}
	logger.Info().Int("books", len(demoBooks())).Msg("catalogue seeded")

	hash, err := auth.HashPassword("admin123admin", cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         "Store Admin",
		Email:        "admin@bookhaven.local",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			logger.Info().Msg("admin account already exists")
			return nil
		}
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	logger.Info().Str("email", admin.Email).Msg("admin account seeded")

	return nil
}

func demoBooks() []model.BookInput {
	price := decimal.RequireFromString
	return []model.BookInput{
		{Title: "Dune", Author: "Frank Herbert", Price: price("9.99"), Genre: "Science Fiction", StockQuantity: 25, Description: "Politics and prophecy on the desert planet Arrakis."},
		{Title: "Hyperion", Author: "Dan Simmons", Price: price("14.50"), Genre: "Science Fiction", StockQuantity: 12, Description: "Seven pilgrims, seven stories, one Shrike."},
		{Title: "The Name of the Wind", Author: "Patrick Rothfuss", Price: price("12.99"), Genre: "Fantasy", StockQuantity: 18, Description: "The legend of Kvothe, told in his own words."},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Price: price("6.50"), Genre: "Classic", StockQuantity: 40, Description: "Manners, marriage and misjudgement in Regency England."},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Price: price("39.95"), Genre: "Technology", StockQuantity: 8, Description: "Journeyman to master, twentieth anniversary edition."},
		{Title: "Kafka on the Shore", Author: "Haruki Murakami", Price: price("11.25"), Genre: "Literary Fiction", StockQuantity: 15, Description: "Two odysseys that bend the border between dream and waking."},
	}
}
