package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// OrderStatusPending is the status every order starts (and stays) in.
const OrderStatusPending = "pending"

// Order is a customer's purchase. Its line items live in order_items.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID         int64     `bun:",pk,autoincrement"`
	CustomerID int64     `bun:"customer_id,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	Status     string    `bun:"status,notnull"`
}

// OrderItem is one product line within an order. It stores no price; the
// current product price is joined in when the order is read.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID        int64 `bun:",pk,autoincrement"`
	OrderID   int64 `bun:"order_id,notnull"`
	ProductID int64 `bun:"product_id,notnull"`
	Quantity  int   `bun:"quantity,notnull"`
}

// OrderLine is one flat row of orders joined with order_items and products.
type OrderLine struct {
	OrderID     int64           `bun:"order_id"`
	CreatedAt   time.Time       `bun:"created_at"`
	Status      string          `bun:"status"`
	ProductID   int64           `bun:"product_id"`
	ProductName string          `bun:"product_name"`
	Quantity    int             `bun:"quantity"`
	Price       decimal.Decimal `bun:"price"`
}
