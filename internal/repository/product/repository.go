package product

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/padoca/internal/database"
	"github.com/Additional-Code/padoca/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/padoca/repository/product")

// Repository encapsulates read/write access for the product catalog.
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

// Create inserts the product and sets its generated ID.
func (r *Repository) Create(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	ctx, span := repoTracer.Start(ctx, "ProductRepository.Create", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	if _, err := r.writer.NewInsert().Model(product).Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return err
	}
	return nil
}

// Update overwrites name, price and description of the product with the
// given ID. A missing ID updates nothing.
func (r *Repository) Update(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	ctx, span := repoTracer.Start(ctx, "ProductRepository.Update", trace.WithAttributes(attribute.Int64("product.id", product.ID)))
	defer span.End()

	_, err := r.writer.NewUpdate().
		Model(product).
		Column("name", "price", "description").
		WherePK().
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
	}
	return err
}

// Delete removes the product. Line items referencing it are left in place.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "ProductRepository.Delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	_, err := r.writer.NewDelete().
		Model((*entity.Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
	}
	return err
}

// List returns the whole catalog in storage order.
func (r *Repository) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "ProductRepository.List")
	defer span.End()

	products := make([]entity.Product, 0)
	if err := r.reader.NewSelect().Model(&products).Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return products, nil
}

// Count returns the number of catalog entries.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.reader.NewSelect().Model((*entity.Product)(nil)).Count(ctx)
}
