package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
)

// CartService owns the server-held cart collection. Every sync is a full
// replacement of the user's unconfirmed lines, which keeps the operation
// idempotent: a retried or interrupted sync is fully overwritten by the next
// one. Concurrent syncs for the same user resolve as last-write-wins.
type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

// Replace rewrites the user's cart from the given lines and reports how many
// were inserted versus updated. An empty set clears the cart.
func (s *CartService) Replace(ctx context.Context, userID string, lines []models.CartLine) (int, int, error) {
	inserted, updated, err := s.store.Carts().ReplaceAll(ctx, userID, lines)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to replace cart for user %s: %w", userID, err)
	}
	slog.Info("cart synced", "user_id", userID, "inserted", inserted, "updated", updated)
	return inserted, updated, nil
}

// Get returns every cart line of the user, confirmed ones included so the
// client can tell purchase history apart from pending lines.
func (s *CartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	lines, err := s.store.Carts().FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart for user %s: %w", userID, err)
	}
	return lines, nil
}

func (s *CartService) DeleteItem(ctx context.Context, userID string, lineID uint) error {
	if err := s.store.Carts().DeleteOne(ctx, userID, lineID); err != nil {
		if err == repository.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete cart line %d: %w", lineID, err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.store.Carts().DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

// UpdateQuantity sets one line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, lineID uint, qty int) error {
	if err := s.store.Carts().UpdateQuantity(ctx, userID, lineID, qty); err != nil {
		if err == repository.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to update cart line %d: %w", lineID, err)
	}
	return nil
}
