// Package postgres implements the repository interfaces on top of GORM.
package postgres

import (
	"context"

	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() repository.ProductStore { return &productStore{db: s.db} }
func (s *Store) Carts() repository.CartStore       { return &cartStore{db: s.db} }
func (s *Store) Orders() repository.OrderStore     { return &orderStore{db: s.db} }

func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
