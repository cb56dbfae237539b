package entity

import "github.com/uptrace/bun"

// Customer is a bakery client. Email is unique across customers.
type Customer struct {
	bun.BaseModel `bun:"table:customers"`

	ID      int64  `bun:",pk,autoincrement"`
	Name    string `bun:"name,notnull"`
	Email   string `bun:"email,notnull,unique"`
	Address string `bun:"address,notnull"`
}
