package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/rchoppari/EcomerceProj/internal/models"
	"github.com/rchoppari/EcomerceProj/internal/repositories"
)

// CartService handles business logic related to shopping carts.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// withRepository returns a copy of the service writing through carts, used to
// run cart mutations inside a unit of work.
func (s *CartService) withRepository(carts repositories.CartRepository) *CartService {
	return &CartService{carts: carts, products: s.products}
}

// AddToCart adds quantity of a product to the user's cart. Repeated adds of the
// same product increment the existing line. Stock is not checked.
func (s *CartService) AddToCart(userID, productID string, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}
	return s.carts.Upsert(userID, productID, quantity)
}

// GetCartItems joins the user's cart lines with the current products. Lines
// whose product no longer exists are skipped.
func (s *CartService) GetCartItems(userID string) ([]models.CartItemView, error) {
	lines, err := s.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.CartItemView, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				log.Printf("Skipping cart line %s: product %s no longer exists", line.ID, line.ProductID)
				continue
			}
			return nil, fmt.Errorf("failed to load product %s for cart line %s: %w", line.ProductID, line.ID, err)
		}
		items = append(items, models.CartItemView{
			CartID:      line.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Price:       product.Price,
			ProductName: product.Name,
		})
	}
	return items, nil
}

// GetCart returns the user's cart items together with their total, both
// computed from the same read.
func (s *CartService) GetCart(userID string) ([]models.CartItemView, float64, error) {
	items, err := s.GetCartItems(userID)
	if err != nil {
		return nil, 0, err
	}
	return items, SumItems(items), nil
}

// GetCartTotal returns the sum of unit price times quantity over the cart.
func (s *CartService) GetCartTotal(userID string) (float64, error) {
	_, total, err := s.GetCart(userID)
	return total, err
}

// RemoveFromCart deletes one cart line. Unknown ids are ignored.
func (s *CartService) RemoveFromCart(cartLineID string) error {
	return s.carts.DeleteByID(cartLineID)
}

// ClearCart deletes every line in the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.carts.DeleteByUser(userID)
}

// SumItems returns Σ price × quantity; an empty slice sums to 0.
func SumItems(items []models.CartItemView) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
