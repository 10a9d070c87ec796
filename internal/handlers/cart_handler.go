package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/count", h.HandleGetCount)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Put("/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
}

// AddToCartRequest is the request body for adding a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartRequest is the request body for changing a cart line's quantity.
type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// HandleGetCart returns the user's cart lines and running total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	items, total, err := h.service.Items(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"cartItems": items,
		"total":     total,
	})
}

// HandleGetCount returns the total quantity reserved in the user's cart.
func (h *CartHandler) HandleGetCount(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	count, err := h.service.Count(userID)
	if err != nil {
		log.Printf("Error counting cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count cart items",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleAddItem reserves stock and adds a product to the user's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	item, err := h.service.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart for user %s: %v", req.ProductID, userID, err)
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Insufficient stock available",
			})
		}
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Product added to cart",
		"cartItem": item,
	})
}

// HandleUpdateItem changes a cart line's quantity, adjusting the
// reservation by the difference.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	itemID := c.Params("id")

	var req UpdateCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	item, err := h.service.UpdateQuantity(userID, itemID, req.Quantity)
	if err != nil {
		log.Printf("Error updating cart item %s for user %s: %v", itemID, userID, err)
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Insufficient stock available",
			})
		}
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Cart updated",
		"cartItem": item,
	})
}

// HandleRemoveItem releases a cart line's reservation and deletes it.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	itemID := c.Params("id")

	if err := h.service.RemoveItem(userID, itemID); err != nil {
		log.Printf("Error removing cart item %s for user %s: %v", itemID, userID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not remove item from cart",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}
