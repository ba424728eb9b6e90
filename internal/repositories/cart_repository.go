package repositories

import "github.com/rchoppari/EcomerceProj/internal/models"

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	// Upsert inserts a line for (userID, productID) or, when one exists,
	// increments its quantity in the same statement. It returns the stored row.
	Upsert(userID, productID string, quantity int) (*models.CartLine, error)
	ListByUser(userID string) ([]models.CartLine, error)
	// DeleteByID removes a line; unknown ids are not an error.
	DeleteByID(id string) error
	DeleteByUser(userID string) error
}
