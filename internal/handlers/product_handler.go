package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/rchoppari/EcomerceProj/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
}

// HandleListProducts lists the catalog with optional search, range filter and sorting.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	query := services.ProductQuery{
		Search:    c.Query("search"),
		MinPrice:  optionalFloat(c, "minPrice"),
		MaxPrice:  optionalFloat(c, "maxPrice"),
		MinRating: optionalFloat(c, "minRating"),
		MaxRating: optionalFloat(c, "maxRating"),
		SortBy:    c.Query("sortBy", "name"),
		Order:     c.Query("order", "asc"),
	}

	products, err := h.service.ListProducts(query)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product by id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve product",
		})
	}
	return c.JSON(product)
}

// optionalFloat reads a numeric query parameter. Missing or malformed values
// are treated as absent.
func optionalFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Ignoring malformed %s query parameter %q", key, raw)
		return nil
	}
	return &value
}
