package services

import (
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService finalizes checkouts and answers order and sales queries.
type OrderService struct {
	orderRepo repositories.OrderRepository
	notifier  *NotificationService
	threshold int
}

// NewOrderService creates a new OrderService. notifier may be nil, in which
// case low-stock and report jobs are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, notifier *NotificationService, lowStockThreshold int) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		threshold: lowStockThreshold,
	}
}

// Checkout converts the user's reserved cart lines into a completed order:
// total from current prices, one order item per line with the unit price
// snapshotted, cart cleared — one transaction. Stock is not touched here;
// it was already committed when each line was reserved. After the commit,
// products sitting at or below the low-stock threshold are re-signalled.
func (s *OrderService) Checkout(userID string) (*models.Order, error) {
	var lowStock []models.Product

	order, err := s.orderRepo.CreateFromCart(userID, func(items []models.CartItem) (*models.Order, error) {
		if len(items) == 0 {
			return nil, ErrEmptyCart
		}

		order := &models.Order{
			ID:     uuid.New().String(),
			UserID: userID,
			Status: models.OrderStatusCompleted,
		}
		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
			order.TotalAmount += float64(item.Quantity) * item.Product.Price

			if item.Product.Stock <= s.threshold {
				lowStock = append(lowStock, item.Product)
			}
		}
		return order, nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		for i := range lowStock {
			s.notifier.DispatchLowStock(&lowStock[i], lowStock[i].Stock)
		}
	}
	return order, nil
}

// OrderForUser retrieves an order and verifies it belongs to the user.
func (s *OrderService) OrderForUser(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

// OrdersByUser retrieves all of a user's orders.
func (s *OrderService) OrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// AllOrders retrieves every order. Admin surface.
func (s *OrderService) AllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// SalesSummary aggregates the day's and lifetime order activity.
func (s *OrderService) SalesSummary(day time.Time) (*repositories.SalesSummary, error) {
	return s.orderRepo.SalesSummary(day)
}

// SendDailySalesReport computes the day's summary and enqueues a report job
// for the admin recipient.
func (s *OrderService) SendDailySalesReport(day time.Time) (*repositories.SalesSummary, error) {
	summary, err := s.orderRepo.SalesSummary(day)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.DispatchDailySalesReport(summary)
	}
	return summary, nil
}
