package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// StockLedger is the authoritative available-quantity counter per product.
// Both operations run against the handle they are given, which is expected to
// be the transaction that also mutates the paired cart or order rows, so a
// rollback undoes the ledger change along with everything else.
type StockLedger interface {
	// Reserve atomically subtracts qty from the product's stock and returns
	// the stock remaining afterwards. It fails with ErrInsufficientStock
	// when the result would go negative, leaving the row untouched.
	Reserve(tx *gorm.DB, productID string, qty int) (int, error)

	// Release atomically adds qty back and returns the resulting stock.
	// There is no upper cap: release only runs inside the transaction that
	// owns the matching reserve, so a doubled compensation cannot occur.
	Release(tx *gorm.DB, productID string, qty int) (int, error)
}

// GORMStockLedger implements StockLedger with a single conditional UPDATE,
// so the availability check and the decrement are one atomic statement and
// concurrent reservations on the same product serialize on the row.
type GORMStockLedger struct{}

// NewGORMStockLedger creates a new GORMStockLedger.
func NewGORMStockLedger() *GORMStockLedger {
	return &GORMStockLedger{}
}

// Reserve subtracts qty guarded by `stock >= qty` in the WHERE clause.
func (GORMStockLedger) Reserve(tx *gorm.DB, productID string, qty int) (int, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to reserve %d units of product %s: %w", qty, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Zero rows means either the product is missing or stock is short.
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to look up product %s: %w", productID, err)
		}
		if count == 0 {
			return 0, ErrProductNotFound
		}
		return 0, ErrInsufficientStock
	}
	return remainingStock(tx, productID)
}

// Release adds qty back unconditionally.
func (GORMStockLedger) Release(tx *gorm.DB, productID string, qty int) (int, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to release %d units of product %s: %w", qty, productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrProductNotFound
	}
	return remainingStock(tx, productID)
}

// remainingStock reads the product's stock through the same handle, so the
// value is consistent with the mutation that preceded it.
func remainingStock(tx *gorm.DB, productID string) (int, error) {
	var stock int
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		Select("stock").Scan(&stock).Error; err != nil {
		return 0, fmt.Errorf("failed to read stock for product %s: %w", productID, err)
	}
	return stock, nil
}
