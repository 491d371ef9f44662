package models

import "time"

// OrderItem is the snapshot of a cart line taken when an order is placed
type OrderItem struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price,omitempty"`
	ProductName string  `json:"productName,omitempty"`
}

// Order represents a placed order
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId,omitempty"`
	Items           []OrderItem `json:"items"`
	Status          string      `json:"status"` // e.g. "Pending", "Shipped"
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt,omitempty"`
}
