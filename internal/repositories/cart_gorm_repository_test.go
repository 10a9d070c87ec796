package repositories_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// openTestDB opens a fresh in-memory SQLite database. The DSN is named after
// the test and uses a shared cache so every pooled connection sees the same
// database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	repo := repositories.NewGORMProductRepository(db)
	product := &models.Product{Name: name, Price: price, Stock: stock}
	if err := repo.Create(product); err != nil {
		t.Fatalf("failed to create product %s: %v", name, err)
	}
	return product
}

func productStock(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()

	product, err := repositories.NewGORMProductRepository(db).GetByID(id)
	if err != nil {
		t.Fatalf("failed to read product %s: %v", id, err)
	}
	return product.Stock
}

func TestStockLedgerReserveAndRelease(t *testing.T) {
	db := openTestDB(t)
	ledger := repositories.NewGORMStockLedger()
	product := createProduct(t, db, "Laptop", 1200.00, 10)

	remaining, err := ledger.Reserve(db, product.ID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 6, remaining)

	// A reservation that would go negative fails and changes nothing.
	_, err = ledger.Reserve(db, product.ID, 7)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Equal(t, 6, productStock(t, db, product.ID))

	// Reserving exactly the remaining stock drains it to zero.
	remaining, err = ledger.Reserve(db, product.ID, 6)
	assert.NoError(t, err)
	assert.Equal(t, 0, remaining)

	remaining, err = ledger.Release(db, product.ID, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, remaining)
}

func TestStockLedgerUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	ledger := repositories.NewGORMStockLedger()

	_, err := ledger.Reserve(db, "missing", 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	_, err = ledger.Release(db, "missing", 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestAddItemCreatesAndGrowsLine(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db, repositories.NewGORMStockLedger())
	product := createProduct(t, db, "Keyboard", 75.00, 20)

	item, remaining, err := repo.AddItem("user-1", product.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 17, remaining)
	assert.Equal(t, product.ID, item.Product.ID)

	// A repeat add grows the same line instead of creating a second one.
	again, remaining, err := repo.AddItem("user-1", product.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, item.ID, again.ID)
	assert.Equal(t, 5, again.Quantity)
	assert.Equal(t, 15, remaining)

	items, err := repo.ItemsByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	count, err := repo.SumQuantityByUser("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestAddItemInsufficientStockLeavesStateUnchanged(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db, repositories.NewGORMStockLedger())
	product := createProduct(t, db, "Mouse", 25.00, 2)

	_, _, err := repo.AddItem("user-1", product.ID, 5)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	assert.Equal(t, 2, productStock(t, db, product.ID))
	items, err := repo.ItemsByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestSetItemQuantityAdjustsLedgerByDelta(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db, repositories.NewGORMStockLedger())
	product := createProduct(t, db, "Monitor", 200.00, 10)

	item, _, err := repo.AddItem("user-1", product.ID, 3)
	assert.NoError(t, err)

	// Growing by 2 reserves exactly 2 more.
	remaining, err := repo.SetItemQuantity(item, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, remaining)
	assert.Equal(t, 5, item.Quantity)

	// Growing past the remaining stock fails and leaves the line unchanged.
	_, err = repo.SetItemQuantity(item, 11)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Equal(t, 5, productStock(t, db, product.ID))
	reloaded, err := repo.ItemByID(item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, reloaded.Quantity)

	// Shrinking always succeeds and releases the difference.
	remaining, err = repo.SetItemQuantity(item, 2)
	assert.NoError(t, err)
	assert.Equal(t, 8, remaining)
	assert.Equal(t, 2, item.Quantity)
}

func TestRemoveItemRestoresFullQuantity(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db, repositories.NewGORMStockLedger())
	product := createProduct(t, db, "Webcam", 49.00, 8)

	item, _, err := repo.AddItem("user-1", product.ID, 6)
	assert.NoError(t, err)
	assert.Equal(t, 2, productStock(t, db, product.ID))

	remaining, err := repo.RemoveItem(item)
	assert.NoError(t, err)
	assert.Equal(t, 8, remaining)

	_, err = repo.ItemByID(item.ID)
	assert.ErrorIs(t, err, repositories.ErrCartItemNotFound)

	// The product can be re-added after removal.
	_, _, err = repo.AddItem("user-1", product.ID, 1)
	assert.NoError(t, err)
}

func TestRemoveMissingItem(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMCartRepository(db, repositories.NewGORMStockLedger())
	product := createProduct(t, db, "Headset", 89.00, 5)

	item, _, err := repo.AddItem("user-1", product.ID, 2)
	assert.NoError(t, err)
	_, err = repo.RemoveItem(item)
	assert.NoError(t, err)

	// Removing the same line again fails, and the failed release inside the
	// transaction is rolled back: stock stays at the restored value.
	_, err = repo.RemoveItem(item)
	assert.True(t, errors.Is(err, repositories.ErrCartItemNotFound))
	assert.Equal(t, 5, productStock(t, db, product.ID))
}
