package postgres

import (
	"context"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartStore struct {
	db *gorm.DB
}

// collapseByProduct reduces a sync payload to one line per product, keeping
// the last occurrence, so the unconfirmed cart holds at most one line per
// (user, product) pair no matter what the client sent.
func collapseByProduct(lines []models.CartLine) []models.CartLine {
	seen := make(map[uint]int, len(lines))
	collapsed := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := seen[l.ProductID]; ok {
			collapsed[i] = l
			continue
		}
		seen[l.ProductID] = len(collapsed)
		collapsed = append(collapsed, l)
	}
	return collapsed
}

// ReplaceAll rewrites the user's unconfirmed cart in one transaction: stale
// lines deleted, known products updated in place, the rest inserted. Confirmed
// lines are left alone so they keep serving as the purchase audit trail.
func (s *cartStore) ReplaceAll(ctx context.Context, userID string, lines []models.CartLine) (int, int, error) {
	lines = collapseByProduct(lines)
	var inserted, updated int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.CartLine
		if err := tx.Where("user_id = ? AND confirmed = ?", userID, false).Find(&existing).Error; err != nil {
			return err
		}
		current := make(map[uint]models.CartLine, len(existing))
		for _, l := range existing {
			current[l.ProductID] = l
		}
		incoming := make(map[uint]bool, len(lines))
		for _, l := range lines {
			incoming[l.ProductID] = true
		}

		var stale []uint
		for pid := range current {
			if !incoming[pid] {
				stale = append(stale, pid)
			}
		}
		if len(stale) > 0 {
			if err := tx.Where("user_id = ? AND confirmed = ? AND product_id IN ?", userID, false, stale).
				Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
		}

		for _, l := range lines {
			if prev, ok := current[l.ProductID]; ok {
				err := tx.Model(&models.CartLine{}).Where("id = ?", prev.ID).Updates(map[string]interface{}{
					"order_quantity": l.OrderQuantity,
					"product_name":   l.ProductName,
					"product_price":  l.ProductPrice,
					"product_images": l.ProductImages,
				}).Error
				if err != nil {
					return err
				}
				updated++
			} else {
				line := l
				line.ID = 0
				line.UserID = userID
				line.Confirmed = false
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

func (s *cartStore) FindByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&lines).Error
	return lines, err
}

func (s *cartStore) FindUnconfirmed(ctx context.Context, userID string, productIDs []uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	if len(productIDs) == 0 {
		return lines, nil
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND confirmed = ? AND product_id IN ?", userID, false, productIDs).
		Find(&lines).Error
	return lines, err
}

func (s *cartStore) FindUnconfirmedForUpdate(ctx context.Context, userID string, productIDs []uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	if len(productIDs) == 0 {
		return lines, nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND confirmed = ? AND product_id IN ?", userID, false, productIDs).
		Find(&lines).Error
	return lines, err
}

func (s *cartStore) DeleteOne(ctx context.Context, userID string, lineID uint) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ? AND confirmed = ?", userID, lineID, false).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *cartStore) DeleteAll(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND confirmed = ?", userID, false).
		Delete(&models.CartLine{}).Error
}

func (s *cartStore) UpdateQuantity(ctx context.Context, userID string, lineID uint, qty int) error {
	if qty <= 0 {
		return s.DeleteOne(ctx, userID, lineID)
	}
	res := s.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("user_id = ? AND id = ? AND confirmed = ?", userID, lineID, false).
		Update("order_quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkConfirmed is the single-writer gate for checkout: the conditional update
// flips confirmed only if it is still false, so of two concurrent confirms for
// the same line exactly one observes RowsAffected == 1.
func (s *cartStore) MarkConfirmed(ctx context.Context, userID string, productID uint) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("user_id = ? AND product_id = ? AND confirmed = ?", userID, productID, false).
		Update("confirmed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
