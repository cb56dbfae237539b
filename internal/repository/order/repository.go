package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/padoca/internal/database"
	"github.com/Additional-Code/padoca/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/padoca/repository/order")

var (
	// ErrNotFound is returned when an order is missing.
	ErrNotFound = errors.New("order not found")
	// ErrCustomerNotFound is returned when an order names an unknown customer.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound matches every MissingProductError.
	ErrProductNotFound = errors.New("product not found")
)

// MissingProductError identifies the first line item whose product does not exist.
type MissingProductError struct {
	ProductID int64
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// Is makes errors.Is(err, ErrProductNotFound) hold.
func (e *MissingProductError) Is(target error) bool {
	return target == ErrProductNotFound
}

// Repository encapsulates read/write access for orders and their line items.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists the order and all of its items in one transaction. The
// customer and every product must exist; otherwise nothing is written.
// On success order.ID and every item's ID/OrderID are populated.
func (r *Repository) Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(
		attribute.Int64("customer.id", order.CustomerID),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	err := r.writer.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := requireRow(ctx, tx, (*entity.Customer)(nil), order.CustomerID, ErrCustomerNotFound); err != nil {
			return err
		}
		if err := requireProducts(ctx, tx, items); err != nil {
			return err
		}

		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	return recordErr(span, err, "create failed")
}

// AddItem appends a line item to an existing order.
func (r *Repository) AddItem(ctx context.Context, item *entity.OrderItem) error {
	if item == nil {
		return errors.New("nil order item")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.AddItem", trace.WithAttributes(
		attribute.Int64("order.id", item.OrderID),
		attribute.Int64("product.id", item.ProductID),
	))
	defer span.End()

	err := r.writer.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := requireRow(ctx, tx, (*entity.Order)(nil), item.OrderID, ErrNotFound); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, (*entity.Product)(nil), item.ProductID, &MissingProductError{ProductID: item.ProductID}); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		return nil
	})
	return recordErr(span, err, "add item failed")
}

// Delete removes the order's line items and then the order itself. A
// missing ID is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	err := r.writer.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*entity.OrderItem)(nil)).Where("order_id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if _, err := tx.NewDelete().Model((*entity.Order)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	return recordErr(span, err, "delete failed")
}

// LinesByCustomer returns one row per line item of every order owned by
// the customer, in whatever order the database yields them. Orders
// without line items are absent because the query is an inner join.
func (r *Repository) LinesByCustomer(ctx context.Context, customerID int64) ([]entity.OrderLine, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.LinesByCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	lines := make([]entity.OrderLine, 0)
	if err := r.linesQuery().Where("o.customer_id = ?", customerID).Scan(ctx, &lines); err != nil {
		return nil, recordErr(span, err, "select failed")
	}
	return lines, nil
}

// LinesByOrder returns the joined rows of a single order.
func (r *Repository) LinesByOrder(ctx context.Context, orderID int64) ([]entity.OrderLine, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.LinesByOrder", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	lines := make([]entity.OrderLine, 0)
	if err := r.linesQuery().Where("o.id = ?", orderID).Scan(ctx, &lines); err != nil {
		return nil, recordErr(span, err, "select failed")
	}
	return lines, nil
}

func (r *Repository) linesQuery() *bun.SelectQuery {
	return r.reader.NewSelect().
		TableExpr("orders AS o").
		ColumnExpr("o.id AS order_id").
		ColumnExpr("o.created_at AS created_at").
		ColumnExpr("o.status AS status").
		ColumnExpr("oi.product_id AS product_id").
		ColumnExpr("p.name AS product_name").
		ColumnExpr("oi.quantity AS quantity").
		ColumnExpr("p.price AS price").
		Join("JOIN order_items AS oi ON oi.order_id = o.id").
		Join("JOIN products AS p ON p.id = oi.product_id")
}

func requireRow(ctx context.Context, tx bun.Tx, model any, id int64, missing error) error {
	ok, err := tx.NewSelect().Model(model).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return missing
	}
	return nil
}

// requireProducts checks every referenced product with a single query and
// reports the first missing one in item order.
func requireProducts(ctx context.Context, tx bun.Tx, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	var found []int64
	err := tx.NewSelect().
		Model((*entity.Product)(nil)).
		Column("id").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx, &found)
	if err != nil {
		return err
	}

	existing := make(map[int64]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return &MissingProductError{ProductID: id}
		}
	}
	return nil
}

func recordErr(span trace.Span, err error, status string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrProductNotFound) {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return err
}
