package repositories

import (
	"fmt"

	"github.com/rchoppari/EcomerceProj/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Upsert relies on the unique (user_id, product_id) index so concurrent adds
// for the same pair never produce two rows or lose an increment.
func (r *GORMCartRepository) Upsert(userID, productID string, quantity int) (*models.CartLine, error) {
	line := models.CartLine{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart.quantity + excluded.quantity"),
		}),
	}).Create(&line).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart line for user %s, product %s: %w", userID, productID, err)
	}

	var stored models.CartLine
	if err := r.db.First(&stored, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart line for user %s, product %s: %w", userID, productID, err)
	}
	return &stored, nil
}

// ListByUser retrieves every cart line owned by userID.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart for user %s: %w", userID, err)
	}
	return lines, nil
}

// DeleteByID deletes a cart line by its ID.
func (r *GORMCartRepository) DeleteByID(id string) error {
	if err := r.db.Delete(&models.CartLine{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete cart line %s: %w", id, err)
	}
	return nil
}

// DeleteByUser deletes every cart line owned by userID.
func (r *GORMCartRepository) DeleteByUser(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
