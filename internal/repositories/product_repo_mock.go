package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rchoppari/EcomerceProj/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	ids      []string // insertion order
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	return r.collect(func(models.Product) bool { return true }), nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Search returns products whose name or category contains term, ignoring case.
func (r *MockProductRepository) Search(term string) ([]models.Product, error) {
	needle := strings.ToLower(term)
	return r.collect(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle)
	}), nil
}

// Filter returns products inside both inclusive ranges.
func (r *MockProductRepository) Filter(minPrice, maxPrice, minRating, maxRating float64) ([]models.Product, error) {
	return r.collect(func(p models.Product) bool {
		return p.Price >= minPrice && p.Price <= maxPrice &&
			p.Rating >= minRating && p.Rating <= maxRating
	}), nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.ids = append(r.ids, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Count returns the number of stored products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *MockProductRepository) collect(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.ids))
	for _, id := range r.ids {
		if p := r.products[id]; keep(p) {
			productList = append(productList, p)
		}
	}
	return productList
}
