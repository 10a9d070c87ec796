package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their items, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByUser retrieves a user's orders with their items, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// CreateFromCart runs the checkout unit of work: read the cart lines, build
// the order through the callback, persist order and items, clear the cart.
// The cart read happens inside the same transaction that clears it, so lines
// added concurrently are either fully included or fully left for next time.
func (r *GORMOrderRepository) CreateFromCart(userID string, build func(items []models.CartItem) (*models.Order, error)) (*models.Order, error) {
	var order *models.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at").
			Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}

		var err error
		order, err = build(items)
		if err != nil {
			return err
		}

		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		for i := range order.Items {
			if order.Items[i].ID == "" {
				order.Items[i].ID = uuid.New().String()
			}
			order.Items[i].OrderID = order.ID
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order for user %s: %w", userID, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// SalesSummary aggregates today's and lifetime order activity.
func (r *GORMOrderRepository) SalesSummary(day time.Time) (*SalesSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	summary := &SalesSummary{Date: start.Format("2006-01-02")}

	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&summary.TodayOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}
	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TodaySales).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's sales: %w", err)
	}
	if err := r.db.Model(&models.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return summary, nil
}
