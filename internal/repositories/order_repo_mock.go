package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository. It
// reads and clears carts through the shared MockCartRepository so checkout
// behaves as the single unit of work the GORM implementation provides.
type MockOrderRepository struct {
	orders map[string]models.Order
	carts  *MockCartRepository
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository
// backed by the given cart store.
func NewMockOrderRepository(carts *MockCartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		carts:  carts,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByUser returns a user's orders.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// CreateFromCart builds an order from the user's cart lines and clears the
// cart when the build succeeds.
func (r *MockOrderRepository) CreateFromCart(userID string, build func(items []models.CartItem) (*models.Order, error)) (*models.Order, error) {
	items, err := r.carts.ItemsByUser(userID)
	if err != nil {
		return nil, err
	}

	order, err := build(items)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order

	r.carts.clearUser(userID)
	return order, nil
}

// SalesSummary aggregates stored orders for the given day plus lifetime
// totals.
func (r *MockOrderRepository) SalesSummary(day time.Time) (*SalesSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	summary := &SalesSummary{Date: start.Format("2006-01-02")}
	for _, order := range r.orders {
		summary.TotalOrders++
		summary.TotalRevenue += order.TotalAmount
		if !order.CreatedAt.Before(start) && order.CreatedAt.Before(end) {
			summary.TodayOrders++
			summary.TodaySales += order.TotalAmount
		}
	}
	return summary, nil
}
