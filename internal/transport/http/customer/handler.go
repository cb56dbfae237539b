package customer

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/dto"
	"github.com/Additional-Code/padoca/internal/entity"
	"github.com/Additional-Code/padoca/internal/presentation/http/response"
	service "github.com/Additional-Code/padoca/internal/service/customer"
	"github.com/Additional-Code/padoca/internal/transport/http/request"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/padoca/transport/http/customer")

// Handler exposes customer endpoints over HTTP.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler constructs a customer Handler.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/users")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/addresses", h.listAddresses)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (p payload) toEntity(id int64) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:      id,
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.TrimSpace(p.Email),
		Address: strings.TrimSpace(p.Address),
	}
	var missing []string
	if customer.Name == "" {
		missing = append(missing, "name")
	}
	if customer.Email == "" {
		missing = append(missing, "email")
	}
	if customer.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, request.Missing(missing...)
	}
	return customer, nil
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	var body payload
	if err := request.Bind(c, &body); err != nil {
		return b.WithError(err).Build()
	}
	customer, err := body.toEntity(0)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.create")
	defer span.End()

	if err := h.svc.Create(ctx, customer); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).
		WithMessage("User created successfully").
		WithField("id", customer.ID).
		Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var body payload
	if err := request.Bind(c, &body); err != nil {
		return b.WithError(err).Build()
	}
	customer, err := body.toEntity(id)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.update", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	if err := h.svc.Update(ctx, customer); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("User updated successfully").Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.delete", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("User deleted successfully").Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	customers, err := h.svc.List(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, dto.CustomerResponse{
			ID:      customer.ID,
			Name:    customer.Name,
			Email:   customer.Email,
			Address: customer.Address,
		})
	}
	return b.WithData(out).Build()
}

func (h *Handler) listAddresses(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	customers, err := h.svc.ListAddresses(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.CustomerAddress, 0, len(customers))
	for _, customer := range customers {
		out = append(out, dto.CustomerAddress{
			ID:      customer.ID,
			Name:    customer.Name,
			Address: customer.Address,
		})
	}
	return b.WithData(out).Build()
}
