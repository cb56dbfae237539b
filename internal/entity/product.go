package entity

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is an item on the bakery catalog.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID          int64           `bun:",pk,autoincrement"`
	Name        string          `bun:"name,notnull"`
	Price       decimal.Decimal `bun:"price,notnull"`
	Description *string         `bun:"description"`
}
