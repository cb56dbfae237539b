package customer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/entity"
	repo "github.com/Additional-Code/padoca/internal/repository/customer"
	"github.com/Additional-Code/padoca/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/padoca/service/customer")

// MsgDuplicateEmail is the client-facing message for an email clash.
const MsgDuplicateEmail = "Email already exists"

// Service implements customer signup and maintenance.
type Service struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(repository *repo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repository, logger: logger}
}

// Create registers a customer. A duplicate email is a client error.
func (s *Service) Create(ctx context.Context, customer *entity.Customer) error {
	if customer == nil {
		return errorbank.BadRequest("customer payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Create")
	defer span.End()

	if err := s.repo.Create(ctx, customer); err != nil {
		return s.writeErr(span, err, "failed to create customer")
	}
	s.logger.Info("customer created", zap.Int64("customer_id", customer.ID))
	return nil
}

// Update overwrites every field of the customer. Unknown ids are ignored.
func (s *Service) Update(ctx context.Context, customer *entity.Customer) error {
	if customer == nil {
		return errorbank.BadRequest("customer payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Update", trace.WithAttributes(attribute.Int64("customer.id", customer.ID)))
	defer span.End()

	if err := s.repo.Update(ctx, customer); err != nil {
		return s.writeErr(span, err, "failed to update customer")
	}
	return nil
}

// Delete removes the customer; their orders stay behind.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "CustomerService.Delete", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.writeErr(span, err, "failed to delete customer")
	}
	return nil
}

// List returns all customers.
func (s *Service) List(ctx context.Context) ([]entity.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, errorbank.Internal("failed to list customers", errorbank.WithCause(err))
	}
	return customers, nil
}

// ListAddresses returns the delivery address of every customer.
func (s *Service) ListAddresses(ctx context.Context) ([]entity.Customer, error) {
	customers, err := s.repo.ListAddresses(ctx)
	if err != nil {
		return nil, errorbank.Internal("failed to list addresses", errorbank.WithCause(err))
	}
	return customers, nil
}

func (s *Service) writeErr(span trace.Span, err error, message string) error {
	if errors.Is(err, repo.ErrDuplicateEmail) {
		return errorbank.Conflict(MsgDuplicateEmail, errorbank.WithDetail("field", "email"))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "repository error")
	return errorbank.Internal(message, errorbank.WithCause(err))
}
