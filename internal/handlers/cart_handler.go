package handlers

import (
	"errors"
	"log"

	"github.com/rchoppari/EcomerceProj/internal/middleware"
	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the cart routes behind auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	cartRoutes := router.Group("/cart", auth)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/:cartId", h.HandleRemoveFromCart)
}

// AddToCartRequest represents the request body for adding a product.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddToCart adds a product to the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	line, err := h.service.AddToCart(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		message := "Could not add product to cart"
		if errors.Is(err, services.ErrProductNotFound) {
			message = "Product not found"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product added to cart",
		"cartId":  line.ID,
	})
}

// HandleGetCart returns the caller's cart items and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, total, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error reading cart: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(fiber.Map{
		"items": items,
		"total": total,
	})
}

// HandleRemoveFromCart deletes one cart line.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	cartID := c.Params("cartId")
	if err := h.service.RemoveFromCart(cartID); err != nil {
		log.Printf("Error removing cart line %s: %v", cartID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not remove product from cart",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product removed from cart",
	})
}
