package repositories

import "github.com/rchoppari/EcomerceProj/internal/models"

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByEmail(email string) (*models.Account, error)
	ExistsByEmail(email string) (bool, error)
}
