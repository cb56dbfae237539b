package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/messaging"
	ordersvc "github.com/Additional-Code/padoca/internal/service/order"
	"github.com/Additional-Code/padoca/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/padoca/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderPlacedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderPlacedHandler logs every committed order with its item totals.
func NewOrderPlacedHandler(logger *zap.Logger) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		_, span := workerTracer.Start(ctx, "worker.orders.placed", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
			attribute.String("messaging.event_type", msg.EventType()),
		))
		defer span.End()

		var event ordersvc.OrderPlacedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order placed", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		units := 0
		for _, item := range event.Items {
			units += item.Quantity
		}
		span.SetAttributes(attribute.Int64("order.id", event.ID), attribute.Int("order.units", units))

		logger.Info("order placed event processed",
			zap.Int64("id", event.ID),
			zap.Int64("customer_id", event.CustomerID),
			zap.String("status", event.Status),
			zap.Int("items", len(event.Items)),
			zap.Int("units", units),
		)

		return nil
	}

	return worker.HandlerRegistration{
		EventType: ordersvc.EventOrderPlaced,
		Handler:   handler,
	}
}
