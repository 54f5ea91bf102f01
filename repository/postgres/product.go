package postgres

import (
	"context"
	"errors"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productStore struct {
	db *gorm.DB
}

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *productStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *productStore) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (s *productStore) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *productStore) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (s *productStore) FindByIDsForUpdate(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

// DecrementStock pushes the subtraction into the store so concurrent checkouts
// can never lose updates; the quantity guard keeps stock non-negative.
func (s *productStore) DecrementStock(ctx context.Context, id uint, qty int) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}
	return nil
}
