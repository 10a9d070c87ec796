package services

import "errors"

// Operation-boundary failure taxonomy. Every error here means the operation
// performed no mutation; handlers translate them into 4xx responses.
var (
	// ErrUnauthorized means the caller touched a cart line or order that
	// belongs to another user.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyCart means checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantity means a cart mutation asked for a non-positive
	// quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
