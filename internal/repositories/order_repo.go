package repositories

import (
	"github.com/rchoppari/EcomerceProj/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order together with its lines.
	Create(order *models.Order) error
	// ListByUser returns the user's orders, newest first.
	ListByUser(userID string) ([]models.Order, error)
}
