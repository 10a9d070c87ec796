package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository. Every
// mutation wraps the ledger operation and the cart line change in one
// database transaction: if any step after the reservation fails, the
// rollback restores the stock as well.
type GORMCartRepository struct {
	db     *gorm.DB
	ledger StockLedger
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB, ledger StockLedger) *GORMCartRepository {
	return &GORMCartRepository{
		db:     db,
		ledger: ledger,
	}
}

// ItemsByUser retrieves the user's cart lines with their products.
func (r *GORMCartRepository) ItemsByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart items for user %s: %w", userID, err)
	}
	return items, nil
}

// ItemByID retrieves a single cart line with its product.
func (r *GORMCartRepository) ItemByID(id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", id, err)
	}
	return &item, nil
}

// SumQuantityByUser returns the total quantity reserved across the user's
// cart lines.
func (r *GORMCartRepository) SumQuantityByUser(userID string) (int, error) {
	var total int64
	if err := r.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum cart quantity for user %s: %w", userID, err)
	}
	return int(total), nil
}

// AddItem reserves qty units of the product and upserts the user's cart line
// inside one transaction.
func (r *GORMCartRepository) AddItem(userID, productID string, qty int) (*models.CartItem, int, error) {
	var item models.CartItem
	var remaining int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		remaining, err = r.ledger.Reserve(tx, productID, qty)
		if err != nil {
			return err
		}

		err = tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				ID:        uuid.New().String(),
				UserID:    userID,
				ProductID: productID,
				Quantity:  qty,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up cart item for user %s: %w", userID, err)
		default:
			item.Quantity += qty
			if err := tx.Model(&item).UpdateColumn("quantity", item.Quantity).Error; err != nil {
				return fmt.Errorf("failed to grow cart item %s: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("Product").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to reload cart item %s: %w", item.ID, err)
	}
	return &item, remaining, nil
}

// SetItemQuantity updates the line to qty, adjusting the ledger by the
// difference inside one transaction. The line is left unchanged when the
// reservation of a positive difference fails.
func (r *GORMCartRepository) SetItemQuantity(item *models.CartItem, qty int) (int, error) {
	delta := qty - item.Quantity
	var remaining int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		switch {
		case delta > 0:
			remaining, err = r.ledger.Reserve(tx, item.ProductID, delta)
		case delta < 0:
			remaining, err = r.ledger.Release(tx, item.ProductID, -delta)
		default:
			remaining, err = remainingStock(tx, item.ProductID)
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).UpdateColumn("quantity", qty)
		if res.Error != nil {
			return fmt.Errorf("failed to update cart item %s: %w", item.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	item.Quantity = qty
	return remaining, nil
}

// RemoveItem releases the full reserved quantity back to the ledger and
// deletes the line, both inside one transaction so a partial failure cannot
// desynchronize cart state from stock.
func (r *GORMCartRepository) RemoveItem(item *models.CartItem) (int, error) {
	var remaining int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		remaining, err = r.ledger.Release(tx, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}

		res := tx.Delete(&models.CartItem{}, "id = ?", item.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart item %s: %w", item.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
