package models

// Product represents a catalog entry in the store.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string  `json:"name" gorm:"type:varchar(255);not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Rating      float64 `json:"rating" gorm:"not null"`
	Category    string  `json:"category" gorm:"type:varchar(100);not null"`
	Description string  `json:"description" gorm:"type:varchar(1000)"`
	ImageURL    string  `json:"imageUrl" gorm:"type:varchar(1000)"`
	Stock       int     `json:"stock" gorm:"not null"`
}
