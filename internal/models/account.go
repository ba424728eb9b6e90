package models

import "time"

// Account represents a registered customer.
type Account struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName string    `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"lastName" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // sealed by the configured credential policy
	CreatedAt time.Time `json:"-"`
}

// TableName overrides the default table name.
func (Account) TableName() string { return "accounts" }
