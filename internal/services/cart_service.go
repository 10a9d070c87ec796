package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for the cart. Adding to the cart
// reserves stock immediately; updating or removing a line adjusts the
// reservation by the difference. After a committed mutation the service
// fires a low-stock signal when the remaining stock is at or below the
// threshold — best effort, never affecting the mutation's outcome.
type CartService struct {
	cartRepo  repositories.CartRepository
	notifier  *NotificationService
	threshold int
}

// NewCartService creates a new CartService. notifier may be nil, in which
// case low-stock signals are skipped.
func NewCartService(cartRepo repositories.CartRepository, notifier *NotificationService, lowStockThreshold int) *CartService {
	return &CartService{
		cartRepo:  cartRepo,
		notifier:  notifier,
		threshold: lowStockThreshold,
	}
}

// Items returns the user's cart lines with their products and the running
// total at current catalog prices.
func (s *CartService) Items(userID string) ([]models.CartItem, float64, error) {
	items, err := s.cartRepo.ItemsByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Product.Price
	}
	return items, total, nil
}

// Count returns the total quantity reserved across the user's cart lines.
func (s *CartService) Count(userID string) (int, error) {
	return s.cartRepo.SumQuantityByUser(userID)
}

// AddToCart reserves qty units of the product for the user. On success the
// stock has already been decremented; the cart line records the reservation.
// On ErrInsufficientStock nothing changed.
func (s *CartService) AddToCart(userID, productID string, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, remaining, err := s.cartRepo.AddItem(userID, productID, qty)
	if err != nil {
		return nil, err
	}
	s.checkLowStock(&item.Product, remaining)
	return item, nil
}

// UpdateQuantity sets the user's cart line to qty, reserving or releasing
// the difference. A failed reservation of a positive difference leaves the
// line unchanged.
func (s *CartService) UpdateQuantity(userID, itemID string, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.cartRepo.ItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrUnauthorized
	}
	remaining, err := s.cartRepo.SetItemQuantity(item, qty)
	if err != nil {
		return nil, err
	}
	s.checkLowStock(&item.Product, remaining)
	return item, nil
}

// RemoveItem releases the line's full reserved quantity back to the ledger
// and deletes it.
func (s *CartService) RemoveItem(userID, itemID string) error {
	item, err := s.cartRepo.ItemByID(itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return ErrUnauthorized
	}
	_, err = s.cartRepo.RemoveItem(item)
	return err
}

func (s *CartService) checkLowStock(product *models.Product, remaining int) {
	if s.notifier == nil {
		return
	}
	if remaining >= 0 && remaining <= s.threshold {
		s.notifier.DispatchLowStock(product, remaining)
	}
}
