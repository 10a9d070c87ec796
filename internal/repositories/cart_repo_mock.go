package repositories

import (
	"sync"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository. It
// shares the product store with a MockProductRepository so the stock
// adjustment and the cart mutation behave as one unit, mirroring the
// transaction the GORM implementation relies on.
type MockCartRepository struct {
	items    map[string]models.CartItem
	products *MockProductRepository
	mu       sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository backed
// by the given product store.
func NewMockCartRepository(products *MockProductRepository) *MockCartRepository {
	return &MockCartRepository{
		items:    make(map[string]models.CartItem),
		products: products,
	}
}

// ItemsByUser returns the user's cart lines with their products attached.
func (r *MockCartRepository) ItemsByUser(userID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		r.attachProduct(&item)
		items = append(items, item)
	}
	return items, nil
}

// ItemByID returns a cart line by its ID with its product attached.
func (r *MockCartRepository) ItemByID(id string) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	r.attachProduct(&item)
	return &item, nil
}

// SumQuantityByUser totals the quantity reserved across the user's lines.
func (r *MockCartRepository) SumQuantityByUser(userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, item := range r.items {
		if item.UserID == userID {
			total += item.Quantity
		}
	}
	return total, nil
}

// AddItem reserves stock and creates or grows the user's line.
func (r *MockCartRepository) AddItem(userID, productID string, qty int) (*models.CartItem, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining, err := r.products.AdjustStock(productID, -qty)
	if err != nil {
		return nil, 0, err
	}

	for id, existing := range r.items {
		if existing.UserID == userID && existing.ProductID == productID {
			existing.Quantity += qty
			r.items[id] = existing
			r.attachProduct(&existing)
			return &existing, remaining, nil
		}
	}

	item := models.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	r.items[item.ID] = item
	r.attachProduct(&item)
	return &item, remaining, nil
}

// SetItemQuantity moves the line to qty, adjusting stock by the difference.
func (r *MockCartRepository) SetItemQuantity(item *models.CartItem, qty int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return 0, ErrCartItemNotFound
	}

	delta := qty - stored.Quantity
	remaining, err := r.products.AdjustStock(stored.ProductID, -delta)
	if err != nil {
		return 0, err
	}

	stored.Quantity = qty
	r.items[item.ID] = stored
	item.Quantity = qty
	return remaining, nil
}

// RemoveItem restores the full reserved quantity and deletes the line.
func (r *MockCartRepository) RemoveItem(item *models.CartItem) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return 0, ErrCartItemNotFound
	}

	remaining, err := r.products.AdjustStock(stored.ProductID, stored.Quantity)
	if err != nil {
		return 0, err
	}
	delete(r.items, item.ID)
	return remaining, nil
}

// clearUser drops all of a user's lines without touching stock. Used by
// MockOrderRepository when a checkout commits.
func (r *MockCartRepository) clearUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
}

func (r *MockCartRepository) attachProduct(item *models.CartItem) {
	if product, err := r.products.GetByID(item.ProductID); err == nil {
		item.Product = *product
	}
}
