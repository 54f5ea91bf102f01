package postgres

import (
	"context"
	"errors"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"gorm.io/gorm"
)

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) CreateBatch(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&orders).Error
}

func (s *orderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (s *orderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *orderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *orderStore) Update(ctx context.Context, o *models.Order) error {
	return s.db.WithContext(ctx).Save(o).Error
}

func (s *orderStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
