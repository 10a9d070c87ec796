package models

import "time"

// CartItem is a stock reservation held by a user. Its quantity has already
// been deducted from Product.Stock when the line was created or grown, and
// is added back when the line shrinks or is removed. One line per
// (user, product) pair.
//
// No gorm.Model here: cart lines are hard-deleted on removal and checkout. A
// soft-deleted line would keep its slot in the (user_id, product_id) unique
// index and block the product from ever being re-added.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product" validate:"required"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
