package models

import "time"

// OrderLine represents a single item within an order.
type OrderLine struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"-" gorm:"type:varchar(36);not null;index"`
	ProductID string  `json:"productId" gorm:"type:varchar(36);not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unitPrice" gorm:"not null"` // Price at the time of order
	Position  int     `json:"-" gorm:"not null;default:0"`
}

// TableName overrides the default table name.
func (OrderLine) TableName() string { return "order_items" }

// Order represents a placed customer order.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"userId" gorm:"type:varchar(36);not null;index"`
	Items           []OrderLine `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice      float64     `json:"totalPrice" gorm:"not null"` // pre-tax
	OrderDate       time.Time   `json:"orderDate" gorm:"not null"`
	DeliveryAddress string      `json:"deliveryAddress" gorm:"type:varchar(500)"`
	CardLastFour    string      `json:"cardLastFour" gorm:"type:varchar(16)"`
}

// TableName overrides the default table name.
func (Order) TableName() string { return "orders" }

// OrderReceipt summarizes a newly placed order.
type OrderReceipt struct {
	OrderID              string         `json:"orderId"`
	Items                []CartItemView `json:"items"`
	TotalPrice           float64        `json:"totalPrice"`
	TaxAmount            float64        `json:"taxAmount"`
	GrandTotal           float64        `json:"grandTotal"`
	OrderDate            time.Time      `json:"orderDate"`
	ExpectedDeliveryDate time.Time      `json:"expectedDeliveryDate"`
	Message              string         `json:"message"`
}

// OrderPlacedEvent is published to the event broker once an order is committed.
type OrderPlacedEvent struct {
	OrderID              string    `json:"orderId"`
	UserID               string    `json:"userId"`
	ItemCount            int       `json:"itemCount"`
	TotalPrice           float64   `json:"totalPrice"`
	TaxAmount            float64   `json:"taxAmount"`
	GrandTotal           float64   `json:"grandTotal"`
	OrderDate            time.Time `json:"orderDate"`
	ExpectedDeliveryDate time.Time `json:"expectedDeliveryDate"`
}
