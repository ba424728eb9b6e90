package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/rchoppari/EcomerceProj/internal/models"
	"github.com/rchoppari/EcomerceProj/internal/repositories"
)

// ProductQuery carries the catalog listing parameters. Range filtering only
// applies when all four bounds are set.
type ProductQuery struct {
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	MaxRating *float64
	SortBy    string
	Order     string
}

// ProductService handles read-only catalog queries.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// SearchProducts matches term against name or category, ignoring case. An
// empty term returns the whole catalog.
func (s *ProductService) SearchProducts(term string) ([]models.Product, error) {
	if term == "" {
		return s.GetAllProducts()
	}
	return s.repo.Search(term)
}

// FilterProducts returns products inside both inclusive ranges.
func (s *ProductService) FilterProducts(minPrice, maxPrice, minRating, maxRating float64) ([]models.Product, error) {
	return s.repo.Filter(minPrice, maxPrice, minRating, maxRating)
}

// ListProducts applies search, else the range filter, else returns all
// products, and sorts the result.
func (s *ProductService) ListProducts(q ProductQuery) ([]models.Product, error) {
	var (
		products []models.Product
		err      error
	)
	switch {
	case q.Search != "":
		products, err = s.SearchProducts(q.Search)
	case q.MinPrice != nil && q.MaxPrice != nil && q.MinRating != nil && q.MaxRating != nil:
		products, err = s.FilterProducts(*q.MinPrice, *q.MaxPrice, *q.MinRating, *q.MaxRating)
	default:
		products, err = s.GetAllProducts()
	}
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return s.SortProducts(products, q.SortBy, q.Order), nil
}

// SortProducts stable-sorts a copy of products by price, rating or name
// (case-insensitive). order "desc" reverses; anything else is ascending.
// An unknown sortBy returns products unchanged.
func (s *ProductService) SortProducts(products []models.Product, sortBy, order string) []models.Product {
	var less func(a, b models.Product) bool
	switch strings.ToLower(sortBy) {
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "rating":
		less = func(a, b models.Product) bool { return a.Rating < b.Rating }
	case "name":
		less = func(a, b models.Product) bool { return a.Name < b.Name }
	default:
		return products
	}

	desc := strings.EqualFold(order, "desc")
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
