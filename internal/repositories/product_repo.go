package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product catalog access. Stock
// is deliberately absent here: availability is only mutated through the
// StockLedger so it stays paired with the cart or order change that caused it.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
