package repositories

import (
	"gorm.io/gorm"
)

// UnitOfWork runs fn with order and cart repositories that share one
// transaction. A non-nil error from fn discards every write made through them.
type UnitOfWork interface {
	Do(fn func(orders OrderRepository, carts CartRepository) error) error
}

// GORMUnitOfWork scopes repositories to a GORM transaction.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db}
}

// Do commits when fn returns nil and rolls back otherwise.
func (u *GORMUnitOfWork) Do(fn func(orders OrderRepository, carts CartRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMOrderRepository(tx), NewGORMCartRepository(tx))
	})
}

// MockUnitOfWork hands the in-memory repositories straight to fn. Writes made
// before a failure are not undone.
type MockUnitOfWork struct {
	Orders OrderRepository
	Carts  CartRepository
}

// Do calls fn with the wrapped repositories.
func (u *MockUnitOfWork) Do(fn func(orders OrderRepository, carts CartRepository) error) error {
	return fn(u.Orders, u.Carts)
}
