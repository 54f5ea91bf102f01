package repository

import (
	"context"
	"errors"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

var (
	// ErrNotFound is returned when a targeted single-row operation matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned by a conditional decrement that would
	// drive the available quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductStore handles persistence for catalog products.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	// FindByIDs returns the products that still exist among ids; missing ids
	// are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	// FindByIDsForUpdate is FindByIDs with row locks held until the enclosing
	// transaction ends. Must be called inside InTx.
	FindByIDsForUpdate(ctx context.Context, ids []uint) ([]models.Product, error)
	// DecrementStock atomically applies quantity -= qty, guarded so stock never
	// goes negative. Returns ErrInsufficientStock when the guard rejects it.
	DecrementStock(ctx context.Context, id uint, qty int) error
}

// CartStore handles persistence for per-user cart lines.
type CartStore interface {
	// ReplaceAll rewrites the user's unconfirmed cart from lines in one logical
	// operation: lines for products absent from the set are removed, present
	// ones are updated in place, new ones inserted. Confirmed lines are never
	// touched. An empty set is equivalent to DeleteAll.
	ReplaceAll(ctx context.Context, userID string, lines []models.CartLine) (inserted, updated int, err error)
	FindByUser(ctx context.Context, userID string) ([]models.CartLine, error)
	// FindUnconfirmed returns the user's unconfirmed lines restricted to productIDs.
	FindUnconfirmed(ctx context.Context, userID string, productIDs []uint) ([]models.CartLine, error)
	// FindUnconfirmedForUpdate locks the matched rows until the enclosing
	// transaction ends. Must be called inside InTx.
	FindUnconfirmedForUpdate(ctx context.Context, userID string, productIDs []uint) ([]models.CartLine, error)
	DeleteOne(ctx context.Context, userID string, lineID uint) error
	DeleteAll(ctx context.Context, userID string) error
	// UpdateQuantity sets one line's quantity; qty <= 0 deletes the line.
	UpdateQuantity(ctx context.Context, userID string, lineID uint, qty int) error
	// MarkConfirmed flips a line's confirmed flag, only if it is still false.
	// Reports whether this call performed the flip.
	MarkConfirmed(ctx context.Context, userID string, productID uint) (bool, error)
}

// OrderStore handles persistence for orders.
type OrderStore interface {
	CreateBatch(ctx context.Context, orders []models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id uint) error
}

// Store bundles the three collections and the transaction boundary.
type Store interface {
	Products() ProductStore
	Carts() CartStore
	Orders() OrderStore
	// InTx runs fn against a store bound to one transaction; fn returning an
	// error rolls every write back.
	InTx(ctx context.Context, fn func(Store) error) error
}
