package repositories

import (
	"storefront/internal/models"
)

// CartRepository defines the interface for cart line data access. The
// mutating operations pair the cart change with the matching stock ledger
// change in one atomic unit and report the product stock remaining after the
// commit, so callers can check the low-stock threshold without a second read.
type CartRepository interface {
	ItemsByUser(userID string) ([]models.CartItem, error)
	ItemByID(id string) (*models.CartItem, error)
	SumQuantityByUser(userID string) (int, error)

	// AddItem reserves qty units and creates the user's cart line for the
	// product, or grows the existing one.
	AddItem(userID, productID string, qty int) (*models.CartItem, int, error)

	// SetItemQuantity moves the line to qty, reserving the positive
	// difference or releasing the negative one.
	SetItemQuantity(item *models.CartItem, qty int) (int, error)

	// RemoveItem releases the line's full quantity and deletes it.
	RemoveItem(item *models.CartItem) (int, error)
}
