package order

import (
	"github.com/Additional-Code/padoca/internal/dto"
	"github.com/Additional-Code/padoca/internal/entity"
)

// Aggregate regroups flat join rows into nested orders. Rows may arrive in
// any order; orders come out in the order their first row was seen and
// items keep their row order within each order. The result is never nil.
func Aggregate(lines []entity.OrderLine) []dto.CustomerOrder {
	orders := make([]dto.CustomerOrder, 0)
	index := make(map[int64]int)

	for _, line := range lines {
		pos, ok := index[line.OrderID]
		if !ok {
			pos = len(orders)
			index[line.OrderID] = pos
			orders = append(orders, dto.CustomerOrder{
				ID:     line.OrderID,
				Date:   line.CreatedAt,
				Status: line.Status,
				Items:  []dto.OrderItem{},
			})
		}
		orders[pos].Items = append(orders[pos].Items, dto.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price.InexactFloat64(),
		})
	}

	return orders
}
