package models

// CartLine binds one user, one product and a quantity. At most one line
// exists per (user, product) pair.
type CartLine struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	ProductID string `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}

// TableName overrides the default table name.
func (CartLine) TableName() string { return "cart" }

// CartItemView is a cart line joined with the current product. It is never persisted.
type CartItemView struct {
	CartID      string  `json:"cartId"`
	ProductID   string  `json:"productId" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	ProductName string  `json:"productName"`
}
