package dto

import "time"

// CustomerOrder is an order with its line items nested, as returned by
// GET /users/{id}/orders and GET /orders/{id}.
type CustomerOrder struct {
	ID     int64       `json:"id"`
	Date   time.Time   `json:"date"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

// OrderItem is a line item enriched with the product's current name and price.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
