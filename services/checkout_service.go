package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"github.com/google/uuid"
)

// CheckoutService turns cart lines into orders. Calculate is a pure read-side
// preview; Confirm is the committing half and runs inside one store
// transaction with row locks, so concurrent confirms for overlapping lines and
// concurrent checkouts draining the same product stock serialize at the store.
//
// Both halves price lines with the cart snapshot, so the total the user
// previewed is exactly the total the order records.
type CheckoutService struct {
	store repository.Store
}

func NewCheckoutService(store repository.Store) *CheckoutService {
	return &CheckoutService{store: store}
}

// CalculationResult is the checkout preview: totals over the valid lines plus
// human-readable descriptions of every line that cannot be checked out yet.
type CalculationResult struct {
	TotalItems        int      `json:"totalItems"`
	TotalPrice        float64  `json:"totalPrice"`
	InsufficientStock []string `json:"insufficientStock"`
	NotFoundProducts  []string `json:"notFoundProducts"`
}

// ShippingInfo is the destination snapshot copied verbatim onto every order
// created by one confirm call.
type ShippingInfo struct {
	Fullname        string
	Email           string
	PhoneNumber     string
	City            string
	ShippingAddress string
}

type classification struct {
	valid        []models.CartLine
	insufficient []string
	notFound     []string
}

// classify buckets each cart line as valid, insufficient-stock or not-found
// against the given catalog snapshot.
func classify(lines []models.CartLine, products []models.Product) classification {
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	cls := classification{insufficient: []string{}, notFound: []string{}}
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		switch {
		case !ok:
			cls.notFound = append(cls.notFound,
				fmt.Sprintf("%s is not part of the catalog anymore", line.ProductName))
		case product.Quantity < line.OrderQuantity:
			cls.insufficient = append(cls.insufficient,
				fmt.Sprintf("%s: requested %d but only %d left in stock",
					line.ProductName, line.OrderQuantity, product.Quantity))
		default:
			cls.valid = append(cls.valid, line)
		}
	}
	return cls
}

func productIDsOf(lines []models.CartLine) []uint {
	seen := make(map[uint]bool, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// Calculate previews the checkout of the given products. It has no side
// effects and may be called repeatedly; totals cover only the valid lines.
func (s *CheckoutService) Calculate(ctx context.Context, userID string, productIDs []uint) (*CalculationResult, error) {
	if len(productIDs) == 0 {
		return nil, ErrNoProductIDs
	}

	lines, err := s.store.Carts().FindUnconfirmed(ctx, userID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrNoCartLines
	}

	products, err := s.store.Products().FindByIDs(ctx, productIDsOf(lines))
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	cls := classify(lines, products)
	result := &CalculationResult{
		InsufficientStock: cls.insufficient,
		NotFoundProducts:  cls.notFound,
	}
	for _, line := range cls.valid {
		result.TotalItems += line.OrderQuantity
		result.TotalPrice += line.LineTotal()
	}
	return result, nil
}

// ConfirmResult reports what one confirm call committed.
type ConfirmResult struct {
	ConfirmedProductIDs []uint
	Orders              []models.Order
}

// Confirm materializes the valid cart lines into orders. Lines that lost their
// product or their stock since the preview are silently left in the cart for
// the user to resolve; everything else is committed in one transaction:
// orders inserted first, then stock decremented, then lines flagged confirmed.
// Returns the ids of the products actually confirmed. A retry of the same call
// finds no unconfirmed lines and fails with ErrNoCartLines, which is what
// keeps a replayed request from double-booking.
func (s *CheckoutService) Confirm(ctx context.Context, userID string, productIDs []uint, shipping ShippingInfo) (*ConfirmResult, error) {
	if len(productIDs) == 0 {
		return nil, ErrNoProductIDs
	}

	result := &ConfirmResult{ConfirmedProductIDs: []uint{}}
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		// Fresh reads under lock; the preview result cannot be trusted here.
		lines, err := tx.Carts().FindUnconfirmedForUpdate(ctx, userID, productIDs)
		if err != nil {
			return fmt.Errorf("failed to load cart lines: %w", err)
		}
		if len(lines) == 0 {
			return ErrNoCartLines
		}

		products, err := tx.Products().FindByIDsForUpdate(ctx, productIDsOf(lines))
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}

		cls := classify(lines, products)
		if len(cls.valid) == 0 {
			return nil
		}

		now := time.Now()
		orders := make([]models.Order, 0, len(cls.valid))
		for _, line := range cls.valid {
			orders = append(orders, models.Order{
				OrderRef:        now.Format("20060102150405") + "-" + uuid.NewString(),
				UserID:          userID,
				ProductID:       line.ProductID,
				Quantity:        line.OrderQuantity,
				TotalPrice:      line.LineTotal(),
				Status:          models.OrderStatusPending,
				Delivered:       false,
				Fullname:        shipping.Fullname,
				Email:           shipping.Email,
				PhoneNumber:     shipping.PhoneNumber,
				City:            shipping.City,
				ShippingAddress: shipping.ShippingAddress,
			})
		}

		if err := tx.Orders().CreateBatch(ctx, orders); err != nil {
			return fmt.Errorf("failed to insert orders: %w", err)
		}

		for _, line := range cls.valid {
			if err := tx.Products().DecrementStock(ctx, line.ProductID, line.OrderQuantity); err != nil {
				return fmt.Errorf("failed to decrement stock of product %d: %w", line.ProductID, err)
			}
			flipped, err := tx.Carts().MarkConfirmed(ctx, userID, line.ProductID)
			if err != nil {
				return fmt.Errorf("failed to confirm cart line of product %d: %w", line.ProductID, err)
			}
			if !flipped {
				return fmt.Errorf("cart line of product %d was confirmed concurrently", line.ProductID)
			}
			result.ConfirmedProductIDs = append(result.ConfirmedProductIDs, line.ProductID)
		}
		result.Orders = orders
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.ConfirmedProductIDs) > 0 {
		slog.Info("checkout confirmed", "user_id", userID, "confirmed", len(result.ConfirmedProductIDs))
	}
	return result, nil
}
