package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

type orderFixture struct {
	products *repositories.MockProductRepository
	carts    *repositories.MockCartRepository
	orders   *repositories.MockOrderRepository
	queue    *fakeJobQueue
	notifier *services.NotificationService
	service  *services.OrderService
}

func newOrderFixture(threshold int) *orderFixture {
	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository(products)
	orders := repositories.NewMockOrderRepository(carts)
	queue := &fakeJobQueue{}
	notifier := services.NewNotificationService(queue, "admin@ecommerce.test", 16)
	return &orderFixture{
		products: products,
		carts:    carts,
		orders:   orders,
		queue:    queue,
		notifier: notifier,
		service:  services.NewOrderService(orders, notifier, threshold),
	}
}

func (f *orderFixture) addProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Stock: stock}
	if err := f.products.Create(product); err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return product
}

func (f *orderFixture) fillCart(t *testing.T, userID, productID string, qty int) {
	t.Helper()
	if _, _, err := f.carts.AddItem(userID, productID, qty); err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}
}

func TestCheckoutBuildsOrderWithPriceSnapshots(t *testing.T) {
	f := newOrderFixture(0)
	p1 := f.addProduct(t, "Laptop", 10.00, 20)
	p2 := f.addProduct(t, "Mouse", 5.00, 20)
	f.fillCart(t, "user-1", p1.ID, 2)
	f.fillCart(t, "user-1", p2.ID, 1)

	order, err := f.service.Checkout("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, 25.00, order.TotalAmount)
	assert.Len(t, order.Items, 2)

	prices := map[string]float64{p1.ID: 10.00, p2.ID: 5.00}
	for _, item := range order.Items {
		assert.Equal(t, prices[item.ProductID], item.Price)
		assert.Equal(t, order.ID, item.OrderID)
	}

	// The cart is cleared; stock was spent at reservation time, so the
	// checkout itself leaves it alone.
	items, err := f.carts.ItemsByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
	stored, err := f.products.GetByID(p1.ID)
	assert.NoError(t, err)
	assert.Equal(t, 18, stored.Stock)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newOrderFixture(0)

	_, err := f.service.Checkout("user-1")
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	orders, err := f.service.AllOrders()
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutResignalsLowStock(t *testing.T) {
	f := newOrderFixture(10)
	product := f.addProduct(t, "Laptop", 1200.00, 12)
	f.fillCart(t, "user-1", product.ID, 3) // leaves stock at 9

	_, err := f.service.Checkout("user-1")
	assert.NoError(t, err)

	f.notifier.Close()
	entries := f.queue.recorded()
	assert.Len(t, entries, 1)
	assert.Equal(t, services.JobLowStock, entries[0].kind)
	payload := entries[0].payload.(services.LowStockPayload)
	assert.Equal(t, product.ID, payload.ProductID)
	assert.Equal(t, 9, payload.CurrentStock)
}

func TestOrderForUserOwnership(t *testing.T) {
	f := newOrderFixture(0)
	product := f.addProduct(t, "Keyboard", 75.00, 10)
	f.fillCart(t, "user-1", product.ID, 1)

	order, err := f.service.Checkout("user-1")
	assert.NoError(t, err)

	got, err := f.service.OrderForUser("user-1", order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.service.OrderForUser("user-2", order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = f.service.OrderForUser("user-1", "missing")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestOrdersByUser(t *testing.T) {
	f := newOrderFixture(0)
	product := f.addProduct(t, "Monitor", 200.00, 10)

	f.fillCart(t, "user-1", product.ID, 1)
	_, err := f.service.Checkout("user-1")
	assert.NoError(t, err)
	f.fillCart(t, "user-2", product.ID, 2)
	_, err = f.service.Checkout("user-2")
	assert.NoError(t, err)

	orders, err := f.service.OrdersByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)

	all, err := f.service.AllOrders()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSendDailySalesReport(t *testing.T) {
	f := newOrderFixture(0)
	product := f.addProduct(t, "Laptop", 100.00, 10)
	f.fillCart(t, "user-1", product.ID, 2)
	_, err := f.service.Checkout("user-1")
	assert.NoError(t, err)

	summary, err := f.service.SendDailySalesReport(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), summary.TodayOrders)
	assert.Equal(t, 200.00, summary.TodaySales)

	f.notifier.Close()
	entries := f.queue.recorded()
	assert.Len(t, entries, 1)
	assert.Equal(t, services.JobDailySalesReport, entries[0].kind)
	payload := entries[0].payload.(services.DailySalesReportPayload)
	assert.Equal(t, "admin@ecommerce.test", payload.Recipient)
	assert.Equal(t, int64(1), payload.Summary.TodayOrders)
}
