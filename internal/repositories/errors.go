package repositories

import "errors"

// Store-level failure taxonomy. Services and handlers branch on these with
// errors.Is; anything else that escapes a repository is a generic transaction
// failure and surfaces as a 500.
var (
	// ErrInsufficientStock means a reservation would drive available stock
	// negative. The operation that hit it performed no mutation.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
)
