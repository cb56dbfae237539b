package order

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/entity"
	"github.com/Additional-Code/padoca/internal/presentation/http/response"
	service "github.com/Additional-Code/padoca/internal/service/order"
	"github.com/Additional-Code/padoca/internal/transport/http/request"
	"github.com/Additional-Code/padoca/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/padoca/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/items", h.addItem)

	e.GET("/users/:id/orders", h.listForCustomer)
}

type itemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (p itemPayload) validate() error {
	if p.ProductID <= 0 {
		return errorbank.BadRequest("product_id must be a positive integer")
	}
	if p.Quantity <= 0 {
		return errorbank.BadRequest("quantity must be positive", errorbank.WithDetail("product_id", p.ProductID))
	}
	return nil
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	var body struct {
		UserID int64         `json:"user_id"`
		Items  []itemPayload `json:"items"`
	}
	if err := request.Bind(c, &body); err != nil {
		return b.WithError(err).Build()
	}
	if body.UserID <= 0 {
		return b.WithError(request.Missing("user_id")).Build()
	}
	if len(body.Items) == 0 {
		return b.WithError(request.Missing("items")).Build()
	}
	items := make([]entity.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		if err := item.validate(); err != nil {
			return b.WithError(err).Build()
		}
		items = append(items, entity.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int64("customer.id", body.UserID),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	order, err := h.svc.Place(ctx, body.UserID, items)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).
		WithMessage("Order created successfully").
		WithField("order_id", order.ID).
		Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(order).Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("Order deleted successfully").Build()
}

func (h *Handler) addItem(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var body itemPayload
	if err := request.Bind(c, &body); err != nil {
		return b.WithError(err).Build()
	}
	if err := body.validate(); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.addItem", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	err = h.svc.AddItem(ctx, id, entity.OrderItem{ProductID: body.ProductID, Quantity: body.Quantity})
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMessage("Item added to order successfully").Build()
}

func (h *Handler) listForCustomer(c echo.Context) error {
	b := response.New(c).WithLogger(h.logger)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.orders", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	orders, err := h.svc.ListForCustomer(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(orders).Build()
}
