package handlers

import (
	"errors"
	"log"

	"github.com/rchoppari/EcomerceProj/internal/middleware"
	"github.com/rchoppari/EcomerceProj/internal/models"
	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the order-related routes. The tax lookup is public.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/order")
	orderRoutes.Post("/", auth, h.HandlePlaceOrder)
	orderRoutes.Get("/ordered-items", auth, h.HandleGetOrderedItems)
	orderRoutes.Get("/tax-on-product/:country", h.HandleGetTaxRate)
}

// PlaceOrderRequest represents the request body for placing an order.
type PlaceOrderRequest struct {
	Items           []models.CartItemView `json:"items" validate:"dive"`
	DeliveryAddress string                `json:"deliveryAddress" validate:"required,notblank"`
	CardNumber      string                `json:"cardNumber" validate:"required,notblank"`
	CardHolderName  string                `json:"cardHolderName" validate:"required,notblank"`
	ExpiryDate      string                `json:"expiryDate" validate:"required,notblank"`
	CVV             string                `json:"cvv" validate:"required,notblank"`
}

// HandlePlaceOrder places an order from the supplied cart snapshot.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	receipt, err := h.service.PlaceOrder(middleware.UserID(c), req.Items, req.DeliveryAddress, services.PaymentDetails{
		CardNumber:     req.CardNumber,
		CardHolderName: req.CardHolderName,
		ExpiryDate:     req.ExpiryDate,
		CVV:            req.CVV,
	})
	if err != nil {
		log.Printf("Error placing order: %v", err)
		message := "Failed to place order"
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			message = "Cart items are required"
		case errors.Is(err, services.ErrInvalidCardNumber):
			message = "Card number must have at least 4 characters"
		case errors.Is(err, services.ErrProductNotFound):
			message = "Product not found"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// HandleGetOrderedItems lists the caller's orders.
func (h *OrderHandler) HandleGetOrderedItems(c *fiber.Ctx) error {
	orders, err := h.service.GetUserOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Failed to retrieve orders",
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"count":  len(orders),
	})
}

// HandleGetTaxRate reports the tax rate for a country.
func (h *OrderHandler) HandleGetTaxRate(c *fiber.Ctx) error {
	country := c.Params("country")
	rate := h.service.GetTaxRate(country)
	return c.JSON(fiber.Map{
		"country":       country,
		"taxRate":       rate,
		"taxPercentage": rate * 100,
	})
}
