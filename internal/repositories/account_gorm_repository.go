package repositories

import (
	"errors"
	"fmt"

	"github.com/rchoppari/EcomerceProj/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Create inserts a new account. The unique email index turns a concurrent
// duplicate registration into ErrDuplicate.
func (r *GORMAccountRepository) Create(account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("account with email %s: %w", account.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by its email from the database.
func (r *GORMAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by email %s: %w", email, err)
	}
	return &account, nil
}

// ExistsByEmail reports whether an account is registered under email.
func (r *GORMAccountRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count accounts by email %s: %w", email, err)
	}
	return count > 0, nil
}
