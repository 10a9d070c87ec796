package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// AdminHandler handles HTTP requests for the admin dashboard.
type AdminHandler struct {
	orderService *services.OrderService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(orderService *services.OrderService) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/dashboard", h.HandleDashboard)
	adminRoutes.Post("/send-daily-report", h.HandleSendDailyReport)
}

// HandleDashboard reports today's and lifetime sales stats.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	summary, err := h.orderService.SalesSummary(time.Now())
	if err != nil {
		log.Printf("Error building sales summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build sales summary",
			"error":   err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleSendDailyReport enqueues a daily sales report job for the admin
// recipient and returns the report data.
func (h *AdminHandler) HandleSendDailyReport(c *fiber.Ctx) error {
	summary, err := h.orderService.SendDailySalesReport(time.Now())
	if err != nil {
		log.Printf("Error sending daily sales report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not send daily sales report",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Daily sales report has been queued for the admin email",
		"report":  summary,
	})
}
