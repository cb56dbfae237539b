package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/config"
	"github.com/Additional-Code/padoca/internal/dto"
	"github.com/Additional-Code/padoca/internal/entity"
	"github.com/Additional-Code/padoca/internal/messaging"
	repo "github.com/Additional-Code/padoca/internal/repository/order"
	"github.com/Additional-Code/padoca/pkg/errorbank"
)

const instrumentation = "github.com/Additional-Code/padoca/service/order"

var (
	serviceTracer = otel.Tracer(instrumentation)
	serviceMeter  = otel.Meter(instrumentation)
)

// EventOrderPlaced is the event-type header of OrderPlacedEvent messages.
const EventOrderPlaced = "order.placed"

// Service encapsulates order placement, maintenance and aggregation.
type Service struct {
	repo      *repo.Repository
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	now       func() time.Time
	placed    metric.Int64Counter
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) (*Service, error) {
	placed, err := serviceMeter.Int64Counter("bakery.orders.placed",
		metric.WithDescription("Orders committed to the store"),
	)
	if err != nil {
		return nil, fmt.Errorf("orders counter: %w", err)
	}

	return &Service{
		repo:      p.Repository,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{enabled: p.Config.Messaging.Enabled},
		now:       func() time.Time { return time.Now().UTC() },
		placed:    placed,
	}, nil
}

// Place stores a new pending order with its items in one transaction.
func (s *Service) Place(ctx context.Context, customerID int64, items []entity.OrderItem) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, errorbank.BadRequest("items must not be empty")
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.Place", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	order := &entity.Order{
		CustomerID: customerID,
		CreatedAt:  s.now(),
		Status:     entity.OrderStatusPending,
	}
	if err := s.repo.Create(ctx, order, items); err != nil {
		return nil, s.mapErr(span, err, "failed to create order")
	}

	s.placed.Add(ctx, 1)
	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customerID),
		zap.Int("items", len(items)),
	)
	s.publishOrderPlaced(ctx, order, items)
	return order, nil
}

// AddItem appends a line item to an existing order.
func (s *Service) AddItem(ctx context.Context, orderID int64, item entity.OrderItem) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.AddItem", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	item.OrderID = orderID
	if err := s.repo.AddItem(ctx, &item); err != nil {
		return s.mapErr(span, err, "failed to add order item")
	}
	return nil
}

// Delete removes an order and its line items. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapErr(span, err, "failed to delete order")
	}
	return nil
}

// ListForCustomer returns the customer's orders with nested, live-priced
// items. A customer without orders yields an empty list. Orders that have
// no line items are not reported.
func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]dto.CustomerOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.ListForCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	lines, err := s.repo.LinesByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.mapErr(span, err, "failed to load orders")
	}
	orders := Aggregate(lines)
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

// Get returns one nested order.
func (s *Service) Get(ctx context.Context, id int64) (*dto.CustomerOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	lines, err := s.repo.LinesByOrder(ctx, id)
	if err != nil {
		return nil, s.mapErr(span, err, "failed to load order")
	}
	orders := Aggregate(lines)
	if len(orders) == 0 {
		return nil, errorbank.NotFound("order not found")
	}
	return &orders[0], nil
}

func (s *Service) mapErr(span trace.Span, err error, message string) error {
	var missing *repo.MissingProductError
	switch {
	case errors.As(err, &missing):
		return errorbank.NotFound("product not found", errorbank.WithDetail("product_id", missing.ProductID))
	case errors.Is(err, repo.ErrCustomerNotFound):
		return errorbank.NotFound("customer not found")
	case errors.Is(err, repo.ErrNotFound):
		return errorbank.NotFound("order not found")
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "repository error")
	return errorbank.Internal(message, errorbank.WithCause(err))
}

func (s *Service) publishOrderPlaced(ctx context.Context, order *entity.Order, items []entity.OrderItem) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderPlacedEvent{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		Items:      make([]OrderPlacedItem, 0, len(items)),
	}
	for _, item := range items {
		event.Items = append(event.Items, OrderPlacedItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order placed", zap.Error(err))
		return
	}
	msg := messaging.Message{
		Key:     []byte(fmt.Sprintf("order-%d", order.ID)),
		Value:   payload,
		Headers: map[string]string{messaging.HeaderEventType: EventOrderPlaced},
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Error("publish order placed", zap.Int64("order_id", order.ID), zap.Error(err))
	}
}

// OrderPlacedEvent is emitted once an order and its items are committed.
type OrderPlacedEvent struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customer_id"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderPlacedItem `json:"items"`
}

// OrderPlacedItem is a line item inside OrderPlacedEvent.
type OrderPlacedItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
