package order

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Additional-Code/padoca/internal/messaging"
	ordersvc "github.com/Additional-Code/padoca/internal/service/order"
)

func TestOrderPlacedHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reg := NewOrderPlacedHandler(zap.New(core))
	require.Equal(t, ordersvc.EventOrderPlaced, reg.EventType)

	payload, err := json.Marshal(ordersvc.OrderPlacedEvent{
		ID:         7,
		CustomerID: 1,
		Status:     "pending",
		CreatedAt:  time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		Items: []ordersvc.OrderPlacedItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, reg.Handler(context.Background(), messaging.Message{
		Topic:   "bakery.events",
		Value:   payload,
		Headers: map[string]string{messaging.HeaderEventType: ordersvc.EventOrderPlaced},
	}))

	entries := logs.FilterMessage("order placed event processed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 7, fields["id"])
	assert.EqualValues(t, 2, fields["items"])
	assert.EqualValues(t, 4, fields["units"])
}

func TestOrderPlacedHandlerRejectsGarbage(t *testing.T) {
	reg := NewOrderPlacedHandler(zap.NewNop())

	err := reg.Handler(context.Background(), messaging.Message{Value: []byte("{")})
	assert.Error(t, err)
}
