package order

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/Additional-Code/padoca/internal/dto"
	"github.com/Additional-Code/padoca/internal/entity"
)

func TestAggregate(t *testing.T) {
	may1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	may2 := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	line := func(orderID int64, date time.Time, productID int64, name string, qty int, price string) entity.OrderLine {
		return entity.OrderLine{
			OrderID:     orderID,
			CreatedAt:   date,
			Status:      entity.OrderStatusPending,
			ProductID:   productID,
			ProductName: name,
			Quantity:    qty,
			Price:       decimal.RequireFromString(price),
		}
	}

	tests := []struct {
		name  string
		lines []entity.OrderLine
		want  []dto.CustomerOrder
	}{
		{
			name:  "no rows",
			lines: nil,
			want:  []dto.CustomerOrder{},
		},
		{
			name:  "single item",
			lines: []entity.OrderLine{line(1, may1, 1, "Pão", 3, "5.0")},
			want: []dto.CustomerOrder{
				{ID: 1, Date: may1, Status: "pending", Items: []dto.OrderItem{
					{ProductID: 1, ProductName: "Pão", Quantity: 3, Price: 5},
				}},
			},
		},
		{
			name: "two products in one order",
			lines: []entity.OrderLine{
				line(1, may1, 1, "Pão", 3, "5.0"),
				line(1, may1, 2, "Bolo", 1, "22.50"),
			},
			want: []dto.CustomerOrder{
				{ID: 1, Date: may1, Status: "pending", Items: []dto.OrderItem{
					{ProductID: 1, ProductName: "Pão", Quantity: 3, Price: 5},
					{ProductID: 2, ProductName: "Bolo", Quantity: 1, Price: 22.5},
				}},
			},
		},
		{
			name: "interleaved rows keep first-seen order",
			lines: []entity.OrderLine{
				line(7, may2, 2, "Bolo", 1, "22.50"),
				line(3, may1, 1, "Pão", 2, "5"),
				line(7, may2, 1, "Pão", 4, "5"),
				line(3, may1, 3, "Sonho", 6, "3.75"),
			},
			want: []dto.CustomerOrder{
				{ID: 7, Date: may2, Status: "pending", Items: []dto.OrderItem{
					{ProductID: 2, ProductName: "Bolo", Quantity: 1, Price: 22.5},
					{ProductID: 1, ProductName: "Pão", Quantity: 4, Price: 5},
				}},
				{ID: 3, Date: may1, Status: "pending", Items: []dto.OrderItem{
					{ProductID: 1, ProductName: "Pão", Quantity: 2, Price: 5},
					{ProductID: 3, ProductName: "Sonho", Quantity: 6, Price: 3.75},
				}},
			},
		},
		{
			name: "same product twice stays two items",
			lines: []entity.OrderLine{
				line(1, may1, 1, "Pão", 1, "5"),
				line(1, may1, 1, "Pão", 2, "5"),
			},
			want: []dto.CustomerOrder{
				{ID: 1, Date: may1, Status: "pending", Items: []dto.OrderItem{
					{ProductID: 1, ProductName: "Pão", Quantity: 1, Price: 5},
					{ProductID: 1, ProductName: "Pão", Quantity: 2, Price: 5},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.lines)
			if got == nil {
				t.Fatal("Aggregate returned nil slice")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
