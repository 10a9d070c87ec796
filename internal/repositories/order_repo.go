package repositories

import (
	"time"

	"storefront/internal/models"
)

// SalesSummary aggregates order activity for the admin dashboard and the
// daily sales report.
type SalesSummary struct {
	Date         string  `json:"date"`
	TodayOrders  int64   `json:"today_orders"`
	TodaySales   float64 `json:"today_sales"`
	TotalOrders  int64   `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)

	// CreateFromCart loads the user's cart lines with their products, hands
	// them to build, stores the returned order with its items and clears the
	// cart, all in one transaction. An error from build aborts the whole
	// unit; no partial state is committed. The stock ledger is not touched.
	CreateFromCart(userID string, build func(items []models.CartItem) (*models.Order, error)) (*models.Order, error)

	// SalesSummary reports order counts and revenue for the given day plus
	// lifetime totals.
	SalesSummary(day time.Time) (*SalesSummary, error)
}
