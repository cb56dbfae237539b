package product

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/dto"
	"github.com/Additional-Code/padoca/internal/entity"
	"github.com/Additional-Code/padoca/internal/presentation/http/response"
	service "github.com/Additional-Code/padoca/internal/service/product"
	"github.com/Additional-Code/padoca/internal/transport/http/request"
	"github.com/Additional-Code/padoca/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/padoca/transport/http/product")

// Handler exposes catalog endpoints over HTTP.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler constructs a product Handler.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/products")
	g.POST("", h.create)
	g.GET("", h.list)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type payload struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

func (p payload) toEntity(id int64) (*entity.Product, error) {
	name := strings.TrimSpace(p.Name)
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, request.Missing(missing...)
	}
	if p.Price.IsNegative() {
		return nil, errorbank.BadRequest("price must not be negative")
	}
	return &entity.Product{
		ID:          id,
		Name:        name,
		Price:       *p.Price,
		Description: p.Description,
	}, nil
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	var body payload
	if err := request.Bind(c, &body); err != nil {
		return b.WithError(err).Build()
	}
	product, err := body.toEntity(0)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.create", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	if err := h.svc.Create(ctx, product); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).
		WithMessage("Product created successfully").
		WithField("id", product.ID).
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
	product, err := body.toEntity(id)
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.update", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := h.svc.Update(ctx, product); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("Product updated successfully").Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.delete", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("Product deleted successfully").Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	products, err := h.svc.List(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, dto.ProductResponse{
			ID:          product.ID,
			Name:        product.Name,
			Price:       product.Price.InexactFloat64(),
			Description: product.Description,
		})
	}
	return b.WithData(out).Build()
}
