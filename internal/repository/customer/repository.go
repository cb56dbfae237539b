package customer

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

var repoTracer = otel.Tracer("github.com/Additional-Code/padoca/repository/customer")

// ErrDuplicateEmail is returned when another customer already uses the email.
var ErrDuplicateEmail = errors.New("customer email already exists")

// Repository encapsulates read/write access for customers.
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

// Create inserts the customer and sets its generated ID.
func (r *Repository) Create(ctx context.Context, customer *entity.Customer) error {
	if customer == nil {
		return errors.New("nil customer")
	}
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.Create")
	defer span.End()

	_, err := r.writer.NewInsert().Model(customer).Exec(ctx)
	return r.writeErr(span, err, "insert failed")
}

// Update overwrites every column of the customer with the given ID. A
// missing ID updates nothing and is not an error.
func (r *Repository) Update(ctx context.Context, customer *entity.Customer) error {
	if customer == nil {
		return errors.New("nil customer")
	}
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.Update", trace.WithAttributes(attribute.Int64("customer.id", customer.ID)))
	defer span.End()

	_, err := r.writer.NewUpdate().
		Model(customer).
		Column("name", "email", "address").
		WherePK().
		Exec(ctx)
	return r.writeErr(span, err, "update failed")
}

// Delete removes the customer. Orders referencing it are left untouched.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.Delete", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	_, err := r.writer.NewDelete().
		Model((*entity.Customer)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return r.writeErr(span, err, "delete failed")
}

// List returns every customer in storage order.
func (r *Repository) List(ctx context.Context) ([]entity.Customer, error) {
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.List")
	defer span.End()

	customers := make([]entity.Customer, 0)
	if err := r.reader.NewSelect().Model(&customers).Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return customers, nil
}

// ListAddresses returns id, name and address of every customer.
func (r *Repository) ListAddresses(ctx context.Context) ([]entity.Customer, error) {
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.ListAddresses")
	defer span.End()

	customers := make([]entity.Customer, 0)
	err := r.reader.NewSelect().
		Model(&customers).
		Column("id", "name", "address").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return customers, nil
}

func (r *Repository) writeErr(span trace.Span, err error, status string) error {
	if err == nil {
		return nil
	}
	if database.IsUniqueViolation(err) {
		span.SetStatus(codes.Error, "duplicate email")
		return ErrDuplicateEmail
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return err
}
