package models

import "gorm.io/gorm"

// Order statuses. Orders are created completed because the stock was already
// committed when the cart lines were reserved.
const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is created once per checkout from the user's reserved cart lines.
// Immutable after creation except Status.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string      `json:"user_id" gorm:"type:varchar(36);index"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem records the quantity and unit price of one product at the moment
// of checkout. Price is a snapshot, decoupled from later catalog changes.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID  string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
