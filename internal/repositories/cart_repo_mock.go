package repositories

import (
	"sync"

	"github.com/rchoppari/EcomerceProj/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	lines map[string]models.CartLine
	ids   []string // insertion order
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		lines: make(map[string]models.CartLine),
	}
}

// Upsert inserts or increments the line for (userID, productID) under one lock.
func (r *MockCartRepository) Upsert(userID, productID string, quantity int) (*models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, line := range r.lines {
		if line.UserID == userID && line.ProductID == productID {
			line.Quantity += quantity
			r.lines[id] = line
			return &line, nil
		}
	}
	line := models.CartLine{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	r.lines[line.ID] = line
	r.ids = append(r.ids, line.ID)
	return &line, nil
}

// ListByUser returns the user's lines in insertion order.
func (r *MockCartRepository) ListByUser(userID string) ([]models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.CartLine
	for _, id := range r.ids {
		if line, ok := r.lines[id]; ok && line.UserID == userID {
			out = append(out, line)
		}
	}
	return out, nil
}

// DeleteByID removes a line by its ID.
func (r *MockCartRepository) DeleteByID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, id)
	return nil
}

// DeleteByUser removes every line owned by userID.
func (r *MockCartRepository) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, line := range r.lines {
		if line.UserID == userID {
			delete(r.lines, id)
		}
	}
	return nil
}
