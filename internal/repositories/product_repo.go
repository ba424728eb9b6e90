package repositories

import (
	"github.com/rchoppari/EcomerceProj/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// Search matches term case-insensitively against name or category.
	Search(term string) ([]models.Product, error)
	// Filter returns products whose price and rating fall in the inclusive ranges.
	Filter(minPrice, maxPrice, minRating, maxRating float64) ([]models.Product, error)
	Create(product *models.Product) error
	Count() (int64, error)
}
