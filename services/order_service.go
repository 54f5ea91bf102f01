package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
)

// OrderService rules the order lifecycle after checkout. Status moves through
// pending -> {prepared, refused, sent} -> delivered; refused is soft and may
// be re-set. Delivered is derived from status alone and is never stored
// independently, and a quantity update to zero removes the order outright.
type OrderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store}
}

// UpdateOrderInput carries the admin patch; nil fields are untouched. The
// delivered field is accepted on the wire but always recomputed from status.
type UpdateOrderInput struct {
	Delivered    *bool   `json:"delivered"`
	Quantity     *int    `json:"quantity"`
	Status       *string `json:"status"`
	RefuseReason *string `json:"refuseReason"`
}

// Update applies the patch and returns the stored order, or (nil, nil) when a
// zero quantity deleted it. Enumeration violations are rejected before any
// store write happens.
func (s *OrderService) Update(ctx context.Context, orderID uint, in UpdateOrderInput) (*models.Order, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	var status models.OrderStatus
	if in.Status != nil {
		parsed, err := models.ParseOrderStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	var reason models.RefuseReason
	if in.RefuseReason != nil {
		parsed, err := models.ParseRefuseReason(*in.RefuseReason)
		if err != nil {
			return nil, err
		}
		reason = parsed
	}

	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if in.Quantity != nil && *in.Quantity == 0 {
		if err := s.store.Orders().Delete(ctx, orderID); err != nil {
			return nil, fmt.Errorf("failed to delete order %d: %w", orderID, err)
		}
		slog.Info("order removed by zero-quantity update", "order_id", orderID)
		return nil, nil
	}

	if in.Quantity != nil {
		// Keep the recorded total consistent with the snapshot unit price.
		if order.Quantity > 0 {
			unit := order.TotalPrice / float64(order.Quantity)
			order.TotalPrice = unit * float64(*in.Quantity)
		}
		order.Quantity = *in.Quantity
	}
	if in.Status != nil {
		order.Status = status
		order.Delivered = status == models.OrderStatusDelivered
	}
	if in.RefuseReason != nil {
		order.RefuseReason = reason
	}

	if err := s.store.Orders().Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().FindAll(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.Orders().FindByUser(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.store.Orders().FindByID(ctx, orderID)
}

func (s *OrderService) Delete(ctx context.Context, orderID uint) error {
	if err := s.store.Orders().Delete(ctx, orderID); err != nil {
		if err == repository.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}
	return nil
}
